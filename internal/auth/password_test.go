package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltask/tasksphere/internal/auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("hash verifies against original password", func(t *testing.T) {
		hash, err := auth.HashPassword("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)
		assert.True(t, auth.CheckPassword("correct horse battery staple", hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		hash, err := auth.HashPassword("password-one")
		require.NoError(t, err)
		assert.False(t, auth.CheckPassword("password-two", hash))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		h1, err := auth.HashPassword("samepassword")
		require.NoError(t, err)
		h2, err := auth.HashPassword("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestGenerateTempPassword(t *testing.T) {
	t.Run("has expected length", func(t *testing.T) {
		pw, err := auth.GenerateTempPassword()
		require.NoError(t, err)
		assert.Len(t, pw, 12)
	})

	t.Run("uses only the documented alphabet", func(t *testing.T) {
		const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%"
		pw, err := auth.GenerateTempPassword()
		require.NoError(t, err)
		for _, c := range pw {
			assert.True(t, strings.ContainsRune(chars, c), "unexpected character %q", c)
		}
	})

	t.Run("successive passwords differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			pw, err := auth.GenerateTempPassword()
			require.NoError(t, err)
			assert.False(t, seen[pw], "duplicate temp password %q", pw)
			seen[pw] = true
		}
	})
}
