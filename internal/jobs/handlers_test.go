package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/database/models"
	"github.com/voltask/tasksphere/internal/jobs"
	"github.com/voltask/tasksphere/internal/testutil"
)

func newHandler(t *testing.T) (*jobs.Handler, *testutil.MockMailer, *auth.OTPService, *testutil.TestContext) {
	t.Helper()

	tc := testutil.NewTestContext(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := jobs.NewHandler(tc.DB, logger, tc.Mailer)
	return h, tc.Mailer, auth.NewOTPService(tc.DB), tc
}

func TestHandleEmailOTP(t *testing.T) {
	h, mailer, _, _ := newHandler(t)

	task, err := jobs.NewEmailOTPTask(jobs.EmailOTPPayload{
		To:      "user@example.com",
		Code:    "123456",
		Subject: "Your Login OTP",
		Heading: "Login Verification",
		Line:    "Use the OTP below to complete your login:",
	})
	require.NoError(t, err)

	require.NoError(t, h.HandleEmailOTP(context.Background(), task))

	sent, ok := mailer.LastOTP()
	require.True(t, ok)
	assert.Equal(t, "user@example.com", sent.To)
	assert.Equal(t, "123456", sent.Code)
	assert.Equal(t, "Your Login OTP", sent.Subject)
}

func TestHandleEmailInvite(t *testing.T) {
	h, mailer, _, _ := newHandler(t)

	task, err := jobs.NewEmailInviteTask(jobs.EmailInvitePayload{
		To:           "eve@example.com",
		Name:         "Eve",
		TempPassword: "s3cret!passw",
		Role:         "employee",
		InvitedBy:    "Alice",
	})
	require.NoError(t, err)

	require.NoError(t, h.HandleEmailInvite(context.Background(), task))

	sent, ok := mailer.LastInvite()
	require.True(t, ok)
	assert.Equal(t, "eve@example.com", sent.To)
	assert.Equal(t, "s3cret!passw", sent.TempPassword)
	assert.Equal(t, "Alice", sent.InvitedBy)
}

func TestHandleOTPCleanup(t *testing.T) {
	h, _, otp, tc := newHandler(t)
	ctx := context.Background()

	company := testutil.CreateTestCompany(t, tc.DB)
	user := testutil.CreateTestUser(t, tc.DB, company, models.RoleAdmin)

	// One consumed code, one live one.
	used, err := otp.Issue(ctx, user.ID, models.PurposeLogin)
	require.NoError(t, err)
	require.NoError(t, otp.Verify(ctx, user.ID, used, models.PurposeLogin))
	live, err := otp.Issue(ctx, user.ID, models.PurposeLogin)
	require.NoError(t, err)

	require.NoError(t, h.HandleOTPCleanup(ctx, jobs.NewOTPCleanupTask()))

	var count int64
	require.NoError(t, tc.DB.Model(&models.OTPRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.NoError(t, otp.Verify(ctx, user.ID, live, models.PurposeLogin))
}
