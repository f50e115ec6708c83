package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-account-console/app/observability/metrics"
	"github.com/FACorreiaa/go-account-console/internal/api"
	"github.com/FACorreiaa/go-account-console/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// UserStore is the part of the credential store that registration, login
// and the auth gate need.
type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	CreateUser(ctx context.Context, params types.CreateUserParams) (*types.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) (time.Time, error)
}

type AuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error)
	Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error)
}

type AuthServiceImpl struct {
	logger   *slog.Logger
	store    UserStore
	hasher   PasswordHasher
	tokens   TokenService
	validate *validator.Validate
	metrics  *metrics.AppMetrics

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(store UserStore, hasher PasswordHasher, tokens TokenService, appMetrics *metrics.AppMetrics, logger *slog.Logger) *AuthServiceImpl {
	if appMetrics == nil {
		appMetrics = metrics.NewNoop()
	}
	return &AuthServiceImpl{
		logger:   logger,
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		validate: api.NewValidator(),
		metrics:  appMetrics,
	}
}

// Register creates an active account and returns a session token for it.
// Invalid input comes back as types.ValidationErrors; a taken email as types.ErrConflict.
func (s *AuthServiceImpl) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Register")
	defer span.End()

	l := s.logger.With(slog.String("method", "Register"))
	start := time.Now()
	outcome := "error"
	defer func() {
		s.metrics.RegisterRequestsTotal.Add(ctx, 1, metrics.Outcome(outcome))
		s.metrics.RegisterDurationSeconds.Record(ctx, time.Since(start).Seconds(), metrics.Outcome(outcome))
	}()

	if err := api.ValidateStruct(s.validate, req); err != nil {
		outcome = "invalid"
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil && existing != nil:
		outcome = "conflict"
		l.InfoContext(ctx, "Registration rejected, email already in use")
		span.SetStatus(codes.Error, "email already in use")
		return nil, types.ErrConflict
	case err != nil && !errors.Is(err, types.ErrNotFound):
		l.ErrorContext(ctx, "Failed to check email uniqueness", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "hash failed")
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, types.CreateUserParams{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			outcome = "conflict"
			span.SetStatus(codes.Error, "email already in use")
			return nil, types.ErrConflict
		}
		l.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "create failed")
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, user.ID, user.Email)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "token issue failed")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	outcome = "created"
	l.InfoContext(ctx, "User registered", slog.String("userID", user.ID.String()))
	span.SetAttributes(attribute.String("user.id", user.ID.String()))
	span.SetStatus(codes.Ok, "User registered")
	return &types.AuthResponse{Token: token, User: user.Public()}, nil
}

// Login checks credentials and stamps the login time. An unknown email and a
// blocked account both return types.ErrInvalidCredentialsOrBlocked; a wrong
// password returns types.ErrInvalidCredentials.
func (s *AuthServiceImpl) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "Login")
	defer span.End()

	l := s.logger.With(slog.String("method", "Login"))
	outcome := "error"
	defer func() {
		s.metrics.LoginRequestsTotal.Add(ctx, 1, metrics.Outcome(outcome))
	}()

	if err := api.ValidateStruct(s.validate, req); err != nil {
		outcome = "invalid"
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			s.burnCompare(req.Password)
			outcome = "rejected"
			l.DebugContext(ctx, "Login for unknown email")
			span.SetStatus(codes.Error, "unknown email")
			return nil, types.ErrInvalidCredentialsOrBlocked
		}
		l.ErrorContext(ctx, "Failed to look up user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	span.SetAttributes(attribute.String("user.id", user.ID.String()))

	if user.IsBlocked() {
		s.burnCompare(req.Password)
		outcome = "blocked"
		l.InfoContext(ctx, "Login for blocked account", slog.String("userID", user.ID.String()))
		span.SetStatus(codes.Error, "account blocked")
		return nil, types.ErrInvalidCredentialsOrBlocked
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		outcome = "rejected"
		l.InfoContext(ctx, "Login with wrong password", slog.String("userID", user.ID.String()))
		span.SetStatus(codes.Error, "password mismatch")
		return nil, types.ErrInvalidCredentials
	}

	if _, err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			// deleted between lookup and stamp
			outcome = "rejected"
			span.SetStatus(codes.Error, "account removed")
			return nil, types.ErrInvalidCredentialsOrBlocked
		}
		l.ErrorContext(ctx, "Failed to update last login", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "last login update failed")
		return nil, fmt.Errorf("error updating last login: %w", err)
	}

	token, err := s.tokens.Issue(ctx, user.ID, user.Email)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "token issue failed")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	outcome = "success"
	l.InfoContext(ctx, "User logged in", slog.String("userID", user.ID.String()))
	span.SetStatus(codes.Ok, "User logged in")
	return &types.AuthResponse{Token: token, User: user.Public()}, nil
}

// burnCompare spends the same hashing work as a real password check so the
// unknown-email and blocked paths are not measurably faster.
func (s *AuthServiceImpl) burnCompare(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(uuid.NewString())
	})
	_ = s.hasher.Verify(password, s.dummyHash)
}
