package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/voltask/tasksphere/internal/mail"
)

// QueueMailer satisfies mail.Mailer by enqueuing delivery jobs instead of
// talking SMTP. The API server uses it so responses never wait on a mail
// server; the worker does the actual send with best-effort retries.
type QueueMailer struct {
	client *asynq.Client
	logger *slog.Logger
}

func NewQueueMailer(client *asynq.Client, logger *slog.Logger) *QueueMailer {
	return &QueueMailer{client: client, logger: logger}
}

var _ mail.Mailer = (*QueueMailer)(nil)

func (m *QueueMailer) SendOTP(ctx context.Context, to, code, subject, heading, line string) error {
	task, err := NewEmailOTPTask(EmailOTPPayload{
		To:      to,
		Code:    code,
		Subject: subject,
		Heading: heading,
		Line:    line,
	})
	if err != nil {
		return err
	}

	// OTP codes expire in minutes, so they jump the queue.
	info, err := m.client.EnqueueContext(ctx, task, asynq.Queue("critical"), asynq.MaxRetry(3))
	if err != nil {
		return err
	}

	m.logger.Debug("enqueued otp email", "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (m *QueueMailer) SendInvite(ctx context.Context, to, name, tempPassword, role, invitedBy string) error {
	task, err := NewEmailInviteTask(EmailInvitePayload{
		To:           to,
		Name:         name,
		TempPassword: tempPassword,
		Role:         role,
		InvitedBy:    invitedBy,
	})
	if err != nil {
		return err
	}

	info, err := m.client.EnqueueContext(ctx, task, asynq.MaxRetry(5))
	if err != nil {
		return err
	}

	m.logger.Debug("enqueued invite email", "task_id", info.ID, "queue", info.Queue)
	return nil
}
