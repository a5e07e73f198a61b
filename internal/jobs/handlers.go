package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/mail"
	"gorm.io/gorm"
)

// otpRetention is how long stale OTP rows are kept before the cleanup sweep
// removes them. Far beyond the 5-minute validity window; this is hygiene,
// not policy.
const otpRetention = 24 * time.Hour

// Handler processes background jobs: email delivery and OTP table hygiene.
type Handler struct {
	logger *slog.Logger
	mailer mail.Mailer
	otp    *auth.OTPService
}

func NewHandler(db *gorm.DB, logger *slog.Logger, mailer mail.Mailer) *Handler {
	return &Handler{
		logger: logger,
		mailer: mailer,
		otp:    auth.NewOTPService(db),
	}
}

func (h *Handler) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeEmailOTP, h.HandleEmailOTP)
	mux.HandleFunc(TypeEmailInvite, h.HandleEmailInvite)
	mux.HandleFunc(TypeOTPCleanup, h.HandleOTPCleanup)
}

func (h *Handler) HandleEmailOTP(ctx context.Context, t *asynq.Task) error {
	var payload EmailOTPPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.mailer.SendOTP(ctx, payload.To, payload.Code, payload.Subject, payload.Heading, payload.Line); err != nil {
		h.logger.Error("otp email delivery failed", "error", err, "subject", payload.Subject)
		return err
	}

	h.logger.Info("otp email delivered", "subject", payload.Subject)
	return nil
}

func (h *Handler) HandleEmailInvite(ctx context.Context, t *asynq.Task) error {
	var payload EmailInvitePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	if err := h.mailer.SendInvite(ctx, payload.To, payload.Name, payload.TempPassword, payload.Role, payload.InvitedBy); err != nil {
		h.logger.Error("invite email delivery failed", "error", err)
		return err
	}

	h.logger.Info("invite email delivered", "role", payload.Role)
	return nil
}

func (h *Handler) HandleOTPCleanup(ctx context.Context, t *asynq.Task) error {
	purged, err := h.otp.PurgeStale(ctx, otpRetention)
	if err != nil {
		h.logger.Error("otp cleanup failed", "error", err)
		return err
	}

	if purged > 0 {
		h.logger.Info("purged stale otp records", "count", purged)
	}
	return nil
}
