package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	appMiddleware "github.com/FACorreiaa/go-account-console/app/middleware"
	"github.com/FACorreiaa/go-account-console/app/observability/metrics"
	"github.com/FACorreiaa/go-account-console/internal/api"
	"github.com/FACorreiaa/go-account-console/internal/types"
)

type contextKey string

const (
	tokenKey     contextKey = "authToken"
	claimsKey    contextKey = "authClaims"
	principalKey contextKey = "authPrincipal"
)

// Client-facing rejection messages. They never say which check failed beyond these three.
const (
	MsgAuthenticationRequired = "Authentication required"
	MsgInvalidToken           = "Invalid token"
	MsgAccessDenied           = "Access denied"
)

// Authenticator builds the guard pipeline that protects console routes:
// bearer extraction, token verification, then principal resolution.
type Authenticator struct {
	tokens  TokenService
	store   UserStore
	logger  *slog.Logger
	metrics *metrics.AppMetrics
}

func NewAuthenticator(tokens TokenService, store UserStore, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Authenticator {
	if appMetrics == nil {
		appMetrics = metrics.NewNoop()
	}
	return &Authenticator{
		tokens:  tokens,
		store:   store,
		logger:  logger,
		metrics: appMetrics,
	}
}

// Pipeline returns the ordered guards. Any rejection stops the request before the handler.
func (a *Authenticator) Pipeline() *appMiddleware.Pipeline {
	return appMiddleware.NewPipeline(a.reject, a.ExtractBearer, a.VerifyToken, a.ResolvePrincipal)
}

// Middleware is Pipeline in chi's signature.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return a.Pipeline().Handler(next)
}

// ExtractBearer requires an "Authorization: Bearer <token>" header.
func (a *Authenticator) ExtractBearer(r *http.Request) (context.Context, error) {
	token, ok := BearerToken(r)
	if !ok {
		return nil, types.ErrUnauthenticated
	}
	return context.WithValue(r.Context(), tokenKey, token), nil
}

// VerifyToken checks signature, algorithm, expiry, issuer and audience.
func (a *Authenticator) VerifyToken(r *http.Request) (context.Context, error) {
	token, ok := r.Context().Value(tokenKey).(string)
	if !ok {
		return nil, types.ErrUnauthenticated
	}
	claims, err := a.tokens.Verify(r.Context(), token)
	if err != nil {
		return nil, err
	}
	return context.WithValue(r.Context(), claimsKey, claims), nil
}

// ResolvePrincipal loads the account named by the verified claims. Deleted and
// blocked accounts are refused even while their token is still unexpired.
func (a *Authenticator) ResolvePrincipal(r *http.Request) (context.Context, error) {
	claims, ok := r.Context().Value(claimsKey).(*types.Claims)
	if !ok {
		return nil, types.ErrUnauthenticated
	}
	user, err := a.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", types.ErrAccessDenied)
		}
		return nil, fmt.Errorf("resolve principal: %w", err)
	}
	if user.IsBlocked() {
		return nil, fmt.Errorf("%w: account blocked", types.ErrAccessDenied)
	}
	return context.WithValue(r.Context(), principalKey, user), nil
}

func (a *Authenticator) reject(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	l := a.logger.With(slog.String("middleware", "Authenticate"), slog.String("path", r.URL.Path))

	status, msg, reason := http.StatusUnauthorized, "", ""
	switch {
	case errors.Is(err, types.ErrUnauthenticated):
		msg, reason = MsgAuthenticationRequired, "missing_token"
	case errors.Is(err, types.ErrInvalidToken):
		msg, reason = MsgInvalidToken, "invalid_token"
	case errors.Is(err, types.ErrAccessDenied):
		msg, reason = MsgAccessDenied, "access_denied"
	default:
		l.ErrorContext(ctx, "Authentication failed unexpectedly", slog.Any("error", err))
		a.metrics.AuthRejectionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", "error")))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Authentication failed")
		return
	}

	l.WarnContext(ctx, "Request rejected", slog.String("reason", reason), slog.Any("error", err))
	a.metrics.AuthRejectionsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	api.ErrorResponse(w, r, status, msg)
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetPrincipal returns the account resolved by the auth gate.
func GetPrincipal(ctx context.Context) (*types.User, bool) {
	user, ok := ctx.Value(principalKey).(*types.User)
	return user, ok && user != nil
}

// GetClaims returns the verified token claims.
func GetClaims(ctx context.Context) (*types.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*types.Claims)
	return claims, ok && claims != nil
}

// WithPrincipal stores user as the authenticated principal. Used by tests that bypass the gate.
func WithPrincipal(ctx context.Context, user *types.User) context.Context {
	return context.WithValue(ctx, principalKey, user)
}
