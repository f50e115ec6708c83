package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-account-console/internal/types"
)

func TestMemoryUserRepo(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryUserRepo().WithClock(func() time.Time { return clock })

	u, err := repo.CreateUser(ctx, types.CreateUserParams{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, u.Status)
	assert.Nil(t, u.LastLoginAt)

	t.Run("email is unique and case sensitive", func(t *testing.T) {
		_, err := repo.CreateUser(ctx, types.CreateUserParams{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
		assert.ErrorIs(t, err, types.ErrConflict)

		_, err = repo.GetUserByEmail(ctx, "Alice@example.com")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("last login never moves backwards", func(t *testing.T) {
		clock = clock.Add(time.Hour)
		first, err := repo.UpdateLastLogin(ctx, u.ID)
		require.NoError(t, err)

		clock = clock.Add(-30 * time.Minute)
		second, err := repo.UpdateLastLogin(ctx, u.ID)
		require.NoError(t, err)
		assert.False(t, second.Before(first))
	})

	t.Run("returned users are copies", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		got.Status = types.StatusBlocked

		again, err := repo.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, types.StatusActive, again.Status)
	})
}
