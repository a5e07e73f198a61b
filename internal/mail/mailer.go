package mail

import "context"

// Mailer is the delivery capability the auth workflows depend on. Rendering
// and transport live behind it; callers treat delivery as best-effort.
type Mailer interface {
	SendOTP(ctx context.Context, to, code, subject, heading, line string) error
	SendInvite(ctx context.Context, to, name, tempPassword, role, invitedBy string) error
}
