package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/database/models"
)

func TestJWTService_GenerateToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)

	userID := uuid.New()
	companyID := uuid.New()

	t.Run("generates valid token", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, companyID, models.RoleAdmin)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, companyID, claims.CompanyID)
		assert.Equal(t, models.RoleAdmin, claims.Role)
	})

	t.Run("token contains correct subject", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, companyID, models.RoleEmployee)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.Subject)
		assert.Equal(t, "tasksphere", claims.Issuer)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	userID := uuid.New()
	companyID := uuid.New()

	t.Run("rejects expired token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond)

		token, err := jwtService.GenerateToken(userID, companyID, models.RoleManager)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		a := auth.NewJWTService("secret-a", 24*time.Hour)
		b := auth.NewJWTService("secret-b", 24*time.Hour)

		token, err := a.GenerateToken(userID, companyID, models.RoleManager)
		require.NoError(t, err)

		_, err = b.ValidateToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour)
		_, err := jwtService.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestJWTService_ResetToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour)
	userID := uuid.New()

	t.Run("round trip", func(t *testing.T) {
		token, err := jwtService.GenerateResetToken(userID)
		require.NoError(t, err)

		got, err := jwtService.ValidateResetToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("session token rejected as reset token", func(t *testing.T) {
		// A session token lacks the pw_reset type tag.
		token, err := jwtService.GenerateToken(userID, uuid.New(), models.RoleAdmin)
		require.NoError(t, err)

		_, err = jwtService.ValidateResetToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
	})

	t.Run("reset token rejected as session token", func(t *testing.T) {
		token, err := jwtService.GenerateResetToken(userID)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		// Parses fine, but carries no identity claims usable as a session.
		if err == nil {
			assert.Equal(t, uuid.Nil, claims.UserID)
		}
	})

	t.Run("rejects token from different secret", func(t *testing.T) {
		other := auth.NewJWTService("other-secret", 24*time.Hour)
		token, err := other.GenerateResetToken(userID)
		require.NoError(t, err)

		_, err = jwtService.ValidateResetToken(token)
		assert.ErrorIs(t, err, auth.ErrInvalidResetToken)
	})
}
