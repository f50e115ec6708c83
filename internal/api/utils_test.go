package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-account-console/internal/types"
)

func TestDecodeJSONBody(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"alice"}`, ""},
		{"empty", ``, "body must not be empty"},
		{"syntax", `{"name":}`, "badly-formed JSON"},
		{"type", `{"name":1}`, "incorrect JSON type"},
		{"unknown key", `{"age":3}`, `unknown key "age"`},
		{"two values", `{"name":"a"}{"name":"b"}`, "single JSON value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst payload
			err := DecodeJSONBody(httptest.NewRecorder(), r, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "alice", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestErrorResponses(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	t.Run("plain", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ErrorResponse(rr, r, http.StatusConflict, "Email already in use")
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "Email already in use", body["error"])
	})

	t.Run("validation", func(t *testing.T) {
		rr := httptest.NewRecorder()
		ValidationErrorResponse(rr, r, types.ValidationErrors{{Field: "name", Message: "Name is required"}})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"field":"name"`)
	})

	t.Run("internal hides details by default", func(t *testing.T) {
		rr := httptest.NewRecorder()
		InternalErrorResponse(rr, r, "Login failed", errors.New("pq: password authentication failed"), false)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "pq:")

		rr = httptest.NewRecorder()
		InternalErrorResponse(rr, r, "Login failed", errors.New("pq: password authentication failed"), true)
		assert.Contains(t, rr.Body.String(), `"details":"pq: password authentication failed"`)
	})
}

func TestVerifyAudience(t *testing.T) {
	assert.True(t, VerifyAudience(jwt.ClaimStrings{"web"}, ""))
	assert.True(t, VerifyAudience(jwt.ClaimStrings{"cli", "web"}, "web"))
	assert.False(t, VerifyAudience(jwt.ClaimStrings{"cli"}, "web"))
	assert.False(t, VerifyAudience(nil, "web"))
}
