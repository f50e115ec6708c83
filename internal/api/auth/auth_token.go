package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-account-console/config"
	"github.com/FACorreiaa/go-account-console/internal/api"
	"github.com/FACorreiaa/go-account-console/internal/types"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

const (
	maxCachedClaims  = 5 * time.Minute
	cacheCleanupTick = 10 * time.Minute
)

var _ TokenService = (*JWTService)(nil)

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(ctx context.Context, userID uuid.UUID, email string) (string, error)
	// Verify returns an error wrapping types.ErrInvalidToken for every rejected token.
	Verify(ctx context.Context, token string) (*types.Claims, error)
}

// JWTService signs HS256 tokens with the configured secret. Verified claims
// are kept in a short-lived cache so repeat requests skip the HMAC.
type JWTService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
	verified *cache.Cache
}

func NewJWTService(cfg config.JWTConfig) (*JWTService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &JWTService{
		secret:   []byte(cfg.SecretKey),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		ttl:      TokenTTL,
		now:      time.Now,
		verified: cache.New(maxCachedClaims, cacheCleanupTick),
	}, nil
}

// WithClock replaces the time source used for issuing and validating tokens.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

func (s *JWTService) Issue(_ context.Context, userID uuid.UUID, email string) (string, error) {
	now := s.now()
	claims := types.Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *JWTService) Verify(_ context.Context, token string) (*types.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", types.ErrInvalidToken)
	}

	if cached, ok := s.verified.Get(token); ok {
		claims := cached.(*types.Claims)
		if s.now().Before(claims.ExpiresAtTime()) {
			return claims, nil
		}
		s.verified.Delete(token)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &types.Claims{}
	parsed, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, types.ErrInvalidToken
	}
	if !api.VerifyAudience(claims.Audience, s.audience) {
		return nil, fmt.Errorf("%w: audience mismatch", types.ErrInvalidToken)
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", types.ErrInvalidToken)
	}

	if d := cacheFor(claims.ExpiresAtTime().Sub(s.now())); d > 0 {
		s.verified.Set(token, claims, d)
	}
	return claims, nil
}

func cacheFor(remaining time.Duration) time.Duration {
	if remaining < maxCachedClaims {
		return remaining
	}
	return maxCachedClaims
}
