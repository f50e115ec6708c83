package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	t.Run("round trip", func(t *testing.T) {
		hash, err := h.Hash("Str0ngP@ss")
		require.NoError(t, err)
		assert.NotEqual(t, "Str0ngP@ss", hash)
		assert.True(t, h.Verify("Str0ngP@ss", hash))
		assert.False(t, h.Verify("Str0ngP@sS", hash))
	})

	t.Run("salted per call", func(t *testing.T) {
		a, err := h.Hash("Str0ngP@ss")
		require.NoError(t, err)
		b, err := h.Hash("Str0ngP@ss")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
		assert.True(t, h.Verify("Str0ngP@ss", a))
		assert.True(t, h.Verify("Str0ngP@ss", b))
	})

	t.Run("malformed hash never verifies", func(t *testing.T) {
		assert.False(t, h.Verify("anything", "not-a-bcrypt-hash"))
		assert.False(t, h.Verify("", ""))
	})

	t.Run("out of range cost falls back to default", func(t *testing.T) {
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost())
		assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost())
		assert.Equal(t, bcrypt.MinCost, h.Cost())
	})
}
