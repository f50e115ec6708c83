package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-account-console/internal/types"
)

// MockAuthService is a mock implementation of the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.AuthResponse), args.Error(1)
}

func doJSON(t *testing.T, h http.HandlerFunc, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)

	var out map[string]interface{}
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	}
	return rr, out
}

func TestRegisterHandler(t *testing.T) {
	req := types.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "Str0ngP@ss"}

	t.Run("Created", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, false, slog.Default())
		id := uuid.New()
		svc.On("Register", mock.Anything, req).Return(&types.AuthResponse{
			Token: "signed-token",
			User:  types.PublicUser{ID: id, Name: req.Name, Email: req.Email},
		}, nil).Once()

		rr, body := doJSON(t, h.Register, req)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "signed-token", body["token"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, id.String(), user["id"])
		assert.NotContains(t, user, "password")
		svc.AssertExpectations(t)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, false, slog.Default())
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, types.ValidationErrors{
			{Field: "password", Message: "Password must be at least 8 characters long"},
		}).Once()

		rr, body := doJSON(t, h.Register, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		errs := body["errors"].([]interface{})
		require.Len(t, errs, 1)
		assert.Equal(t, "password", errs[0].(map[string]interface{})["field"])
	})

	t.Run("Conflict", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, false, slog.Default())
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, types.ErrConflict).Once()

		rr, body := doJSON(t, h.Register, req)
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "Email already in use", body["error"])
	})

	t.Run("MalformedBody", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, false, slog.Default())

		rr, _ := doJSON(t, h.Register, `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("InternalErrorHidesDetails", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, false, slog.Default())
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		rr, body := doJSON(t, h.Register, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "Registration failed", body["error"])
		assert.NotContains(t, body, "details")
	})

	t.Run("InternalErrorDetailsInDevelopment", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, true, slog.Default())
		svc.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		rr, body := doJSON(t, h.Register, req)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "db down", body["details"])
	})
}

func TestLoginHandler(t *testing.T) {
	req := types.LoginRequest{Email: "alice@example.com", Password: "Str0ngP@ss"}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"blocked or unknown", types.ErrInvalidCredentialsOrBlocked, http.StatusUnauthorized, "Invalid credentials or account blocked"},
		{"wrong password", types.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"store failure", errors.New("timeout"), http.StatusInternalServerError, "Login failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			h := NewAuthHandler(svc, false, slog.Default())
			svc.On("Login", mock.Anything, req).Return(nil, tt.err).Once()

			rr, body := doJSON(t, h.Login, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantError, body["error"])
		})
	}

	t.Run("Success", func(t *testing.T) {
		svc := new(MockAuthService)
		h := NewAuthHandler(svc, false, slog.Default())
		svc.On("Login", mock.Anything, req).Return(&types.AuthResponse{
			Token: "signed-token",
			User:  types.PublicUser{ID: uuid.New(), Name: "Alice", Email: req.Email},
		}, nil).Once()

		rr, body := doJSON(t, h.Login, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "signed-token", body["token"])
	})
}
