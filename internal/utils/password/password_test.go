package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBCryptHasher(t *testing.T) {
	hasher := NewBCryptHasher(DefaultCost)

	t.Run("Hash and check", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", hash)

		assert.NoError(t, hasher.Check(hash, "secret123"))
	})

	t.Run("Wrong password", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)

		assert.Error(t, hasher.Check(hash, "wrong-password"))
	})

	t.Run("Hashes are salted", func(t *testing.T) {
		first, err := hasher.Hash("secret123")
		require.NoError(t, err)
		second, err := hasher.Hash("secret123")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("Out of range cost falls back to default", func(t *testing.T) {
		hasher := NewBCryptHasher(1000)

		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)
		assert.NoError(t, hasher.Check(hash, "secret123"))
	})
}
