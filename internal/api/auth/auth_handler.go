package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FACorreiaa/go-account-console/internal/api"
	"github.com/FACorreiaa/go-account-console/internal/types"
)

const msgEmailInUse = "Email already in use"

type AuthHandler struct {
	authService   AuthService
	logger        *slog.Logger
	exposeDetails bool
}

// NewAuthHandler wires the register and login endpoints. exposeDetails echoes
// internal error text in 500 responses and is meant for development only.
func NewAuthHandler(authService AuthService, exposeDetails bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		logger:        logger,
		exposeDetails: exposeDetails,
	}
}

// Register godoc
// @Summary      Register
// @Description  Creates an active account and returns a session token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.RegisterRequest true "Registration details"
// @Success      201 {object} types.AuthResponse
// @Failure      400 {object} types.Response "Validation failed"
// @Failure      409 {object} types.Response "Email already in use"
// @Failure      500 {object} types.Response "Registration failed"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Register"))

	var req types.RegisterRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid register body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.Register(ctx, req)
	if err != nil {
		var verrs types.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			api.ValidationErrorResponse(w, r, verrs)
		case errors.Is(err, types.ErrConflict):
			api.ErrorResponse(w, r, http.StatusConflict, msgEmailInUse)
		default:
			l.ErrorContext(ctx, "Registration failed", slog.Any("error", err))
			api.InternalErrorResponse(w, r, "Registration failed", err, h.exposeDetails)
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// Login godoc
// @Summary      Login
// @Description  Checks credentials, records the login time and returns a session token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body body types.LoginRequest true "Credentials"
// @Success      200 {object} types.AuthResponse
// @Failure      400 {object} types.Response "Validation failed"
// @Failure      401 {object} types.Response "Invalid credentials"
// @Failure      500 {object} types.Response "Login failed"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "Login"))

	var req types.LoginRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid login body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.authService.Login(ctx, req)
	if err != nil {
		var verrs types.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			api.ValidationErrorResponse(w, r, verrs)
		case errors.Is(err, types.ErrInvalidCredentialsOrBlocked):
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid credentials or account blocked")
		case errors.Is(err, types.ErrInvalidCredentials):
			api.ErrorResponse(w, r, http.StatusUnauthorized, "Invalid credentials")
		default:
			l.ErrorContext(ctx, "Login failed", slog.Any("error", err))
			api.InternalErrorResponse(w, r, "Login failed", err, h.exposeDetails)
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
