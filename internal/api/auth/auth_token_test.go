package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-account-console/config"
	"github.com/FACorreiaa/go-account-console/internal/types"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		SecretKey: "test-secret-key-for-tokens",
		Issuer:    "test-issuer",
		Audience:  "test-audience",
	}
}

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	s, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)
	return s
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(config.JWTConfig{})
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestJWTService(t)
	id := uuid.New()

	token, err := s.Issue(ctx, id, "alice@example.com")
	require.NoError(t, err)

	claims, err := s.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, id.String(), claims.Subject)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.Equal(t, TokenTTL, claims.ExpiresAtTime().Sub(claims.IssuedAtTime()))

	// second verification is served from the cache and agrees
	again, err := s.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, again.UserID)
}

func TestJWTService_Rejects(t *testing.T) {
	ctx := context.Background()
	s := newTestJWTService(t)
	id := uuid.New()

	valid, err := s.Issue(ctx, id, "alice@example.com")
	require.NoError(t, err)

	t.Run("one byte tampered payload", func(t *testing.T) {
		parts := strings.Split(valid, ".")
		require.Len(t, parts, 3)
		payload := []byte(parts[1])
		mid := len(payload) / 2
		if payload[mid] == 'A' {
			payload[mid] = 'B'
		} else {
			payload[mid] = 'A'
		}
		tampered := parts[0] + "." + string(payload) + "." + parts[2]

		_, err := s.Verify(ctx, tampered)
		assert.ErrorIs(t, err, types.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.SecretKey = "another-secret"
		other, err := NewJWTService(cfg)
		require.NoError(t, err)
		foreign, err := other.Issue(ctx, id, "alice@example.com")
		require.NoError(t, err)

		_, err = s.Verify(ctx, foreign)
		assert.ErrorIs(t, err, types.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.Issuer = "someone-else"
		other, err := NewJWTService(cfg)
		require.NoError(t, err)
		foreign, err := other.Issue(ctx, id, "alice@example.com")
		require.NoError(t, err)

		_, err = s.Verify(ctx, foreign)
		assert.ErrorIs(t, err, types.ErrInvalidToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		cfg := testJWTConfig()
		cfg.Audience = "another-app"
		other, err := NewJWTService(cfg)
		require.NoError(t, err)
		foreign, err := other.Issue(ctx, id, "alice@example.com")
		require.NoError(t, err)

		_, err = s.Verify(ctx, foreign)
		assert.ErrorIs(t, err, types.ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, types.Claims{
			UserID: id,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "test-issuer",
				Audience:  jwt.ClaimStrings{"test-audience"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.Verify(ctx, raw)
		assert.ErrorIs(t, err, types.ErrInvalidToken)
	})

	t.Run("garbage and empty", func(t *testing.T) {
		for _, raw := range []string{"", "not.a.token", "abc"} {
			_, err := s.Verify(ctx, raw)
			assert.True(t, errors.Is(err, types.ErrInvalidToken), "token %q", raw)
		}
	})
}

func TestJWTService_Expiry(t *testing.T) {
	ctx := context.Background()
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	clock := issuedAt
	s := newTestJWTService(t).WithClock(func() time.Time { return clock })

	token, err := s.Issue(ctx, uuid.New(), "alice@example.com")
	require.NoError(t, err)

	clock = issuedAt.Add(TokenTTL - time.Minute)
	_, err = s.Verify(ctx, token)
	require.NoError(t, err, "still valid just before expiry")

	// a cached entry must not outlive the token
	clock = issuedAt.Add(TokenTTL + time.Second)
	_, err = s.Verify(ctx, token)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestCacheFor(t *testing.T) {
	assert.Equal(t, maxCachedClaims, cacheFor(time.Hour))
	assert.Equal(t, time.Minute, cacheFor(time.Minute))
}
