package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltask/tasksphere/internal/api/dto"
	"github.com/voltask/tasksphere/internal/database/models"
	"github.com/voltask/tasksphere/internal/testutil"
)

func TestRegisterEndpoint(t *testing.T) {
	e := setupEnv(t)

	body := map[string]string{
		"company_name": "Acme Corp",
		"name":         "Alice Admin",
		"email":        "alice@acme.test",
		"password":     "supersecret1",
	}

	t.Run("registers and emails a verification code", func(t *testing.T) {
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/register", body))
		assert.Equal(t, http.StatusCreated, rec.Code)

		sent, ok := e.mailer.LastOTP()
		require.True(t, ok)
		assert.Equal(t, "alice@acme.test", sent.To)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/register", body))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"email": "not-an-email",
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp dto.ErrorResponse
		decodeBody(t, rec, &resp)
		assert.NotEmpty(t, resp.Details)
	})
}

// The full onboarding path: register, fail with a wrong code, verify with the
// right one, then complete the two-step login.
func TestRegistrationAndLoginFlow(t *testing.T) {
	e := setupEnv(t)

	rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"company_name": "Globex",
		"name":         "Hank",
		"email":        "hank@globex.test",
		"password":     "supersecret1",
	}))
	require.Equal(t, http.StatusCreated, rec.Code)

	verifyCode, ok := e.mailer.LastOTP()
	require.True(t, ok)

	// Login before verification is refused.
	rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "hank@globex.test", "password": "supersecret1",
	}))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Wrong verification code.
	wrong := "000000"
	if wrong == verifyCode.Code {
		wrong = "000001"
	}
	rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/verify-email", map[string]string{
		"email": "hank@globex.test", "otp": wrong,
	}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Correct code activates the account.
	rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/verify-email", map[string]string{
		"email": "hank@globex.test", "otp": verifyCode.Code,
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	// Step one: no token in the response, just an OTP email.
	rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email": "hank@globex.test", "password": "supersecret1",
	}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "access_token")

	loginCode, ok := e.mailer.LastOTP()
	require.True(t, ok)
	require.NotEqual(t, verifyCode.Subject, loginCode.Subject)

	// Step two: the OTP yields the session token.
	rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/verify-login", map[string]string{
		"email": "hank@globex.test", "otp": loginCode.Code,
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	var token dto.TokenResponse
	decodeBody(t, rec, &token)
	assert.Equal(t, "bearer", token.TokenType)
	assert.False(t, token.MustChangePassword)

	claims, err := e.jwt.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// The token works against a protected endpoint.
	rec = e.do(testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/auth/me", nil, token.AccessToken))
	require.Equal(t, http.StatusOK, rec.Code)

	var me dto.UserResponse
	decodeBody(t, rec, &me)
	assert.Equal(t, "hank@globex.test", me.Email)
	assert.Equal(t, "admin", me.Role)
}

func TestLoginEndpoint(t *testing.T) {
	e := setupEnv(t)
	company := testutil.CreateTestCompany(t, e.db)
	user := testutil.CreateTestUser(t, e.db, company, models.RoleEmployee)

	t.Run("wrong password", func(t *testing.T) {
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email": user.Email, "password": "nope",
		}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown email gets the same status", func(t *testing.T) {
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email": "ghost@acme.test", "password": "testpassword123",
		}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("login OTP cannot be replayed", func(t *testing.T) {
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email": user.Email, "password": "testpassword123",
		}))
		require.Equal(t, http.StatusOK, rec.Code)
		sent, ok := e.mailer.LastOTP()
		require.True(t, ok)

		body := map[string]string{"email": user.Email, "otp": sent.Code}
		rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/verify-login", body))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/verify-login", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPasswordResetEndpoints(t *testing.T) {
	e := setupEnv(t)
	company := testutil.CreateTestCompany(t, e.db)
	user := testutil.CreateTestUser(t, e.db, company, models.RoleManager)

	t.Run("unknown email gets the same response and no email", func(t *testing.T) {
		before := e.mailer.OTPCount()
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{
			"email": "ghost@acme.test",
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, before, e.mailer.OTPCount())
	})

	t.Run("full reset flow", func(t *testing.T) {
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/forgot-password", map[string]string{
			"email": user.Email,
		}))
		require.Equal(t, http.StatusOK, rec.Code)
		sent, ok := e.mailer.LastOTP()
		require.True(t, ok)

		rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/verify-reset-otp", map[string]string{
			"email": user.Email, "otp": sent.Code,
		}))
		require.Equal(t, http.StatusOK, rec.Code)

		var reset dto.ResetTokenResponse
		decodeBody(t, rec, &reset)
		require.NotEmpty(t, reset.ResetToken)

		rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/reset-password", map[string]string{
			"reset_token": reset.ResetToken, "new_password": "freshpassword1",
		}))
		require.Equal(t, http.StatusOK, rec.Code)

		// New password now passes the first login factor.
		rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email": user.Email, "password": "freshpassword1",
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("session token is not a reset token", func(t *testing.T) {
		sessionToken := testutil.GenerateTestToken(t, e.jwt, user)
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/reset-password", map[string]string{
			"reset_token": sessionToken, "new_password": "whatever123",
		}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChangePasswordEndpoint(t *testing.T) {
	e := setupEnv(t)
	company := testutil.CreateTestCompany(t, e.db)
	user := testutil.CreateTestUser(t, e.db, company, models.RoleEmployee)
	token := testutil.GenerateTestToken(t, e.jwt, user)

	t.Run("requires a session", func(t *testing.T) {
		rec := e.do(testutil.UnauthenticatedRequest(t, http.MethodPut, "/api/v1/auth/change-password", map[string]string{
			"old_password": "testpassword123", "new_password": "newpassword1",
		}))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong old password", func(t *testing.T) {
		rec := e.do(testutil.AuthenticatedRequest(t, http.MethodPut, "/api/v1/auth/change-password", map[string]string{
			"old_password": "nope", "new_password": "newpassword1",
		}, token))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("changes the password", func(t *testing.T) {
		rec := e.do(testutil.AuthenticatedRequest(t, http.MethodPut, "/api/v1/auth/change-password", map[string]string{
			"old_password": "testpassword123", "new_password": "newpassword1",
		}, token))
		require.Equal(t, http.StatusOK, rec.Code)

		rec = e.do(testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email": user.Email, "password": "newpassword1",
		}))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
