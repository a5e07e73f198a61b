package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/voltask/tasksphere/pkg/config"
	"gopkg.in/gomail.v2"
)

// SMTPMailer delivers mail over authenticated SMTP.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}
	return nil
}

func (m *SMTPMailer) SendOTP(_ context.Context, to, code, subject, heading, line string) error {
	return m.send(to, subject, otpBody(code, heading, line))
}

func (m *SMTPMailer) SendInvite(_ context.Context, to, name, tempPassword, role, invitedBy string) error {
	return m.send(to, "You're invited to TaskSphere", inviteBody(to, name, tempPassword, role, invitedBy))
}

func otpBody(code, heading, line string) string {
	return fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; padding: 24px; background: #f9f9f9;">
    <div style="max-width:480px; margin:auto; background:#fff; border-radius:10px; padding:32px;">
      <h2 style="color:#4F46E5; margin-top:0;">%s</h2>
      <p style="color:#444;">%s</p>
      <div style="display:inline-block; padding:14px 32px; background:#4F46E5; color:#fff; font-size:34px; letter-spacing:10px; border-radius:8px; margin:16px 0; font-weight:bold;">%s</div>
      <p style="color:#444;">This OTP is valid for <strong>5 minutes</strong>.</p>
      <hr style="border:none; border-top:1px solid #eee; margin:24px 0;">
      <p style="color:#aaa; font-size:12px;">If you didn't request this, you can safely ignore this email.</p>
    </div>
  </body>
</html>`, heading, line, code)
}

func inviteBody(email, name, tempPassword, role, invitedBy string) string {
	return fmt.Sprintf(`<html>
  <body style="font-family: Arial, sans-serif; padding: 24px; background: #f9f9f9;">
    <div style="max-width:480px; margin:auto; background:#fff; border-radius:10px; padding:32px;">
      <h2 style="color:#4F46E5; margin-top:0;">You've been invited to TaskSphere!</h2>
      <p style="color:#444;">Hi <strong>%s</strong>,</p>
      <p style="color:#444;"><strong>%s</strong> has invited you to join their workspace as a <strong>%s</strong>.</p>
      <p style="color:#444;">Here are your login credentials:</p>
      <table style="width:100%%; border-collapse:collapse; margin:16px 0;">
        <tr>
          <td style="padding:8px 12px; background:#f3f4f6; color:#555; font-weight:bold; width:40%%;">Email</td>
          <td style="padding:8px 12px; background:#f3f4f6; color:#222;">%s</td>
        </tr>
        <tr><td colspan="2" style="padding:4px;"></td></tr>
        <tr>
          <td style="padding:8px 12px; background:#f3f4f6; color:#555; font-weight:bold;">Temp Password</td>
          <td style="padding:8px 12px; background:#f3f4f6; color:#222; font-family:monospace; letter-spacing:2px;">%s</td>
        </tr>
      </table>
      <hr style="border:none; border-top:1px solid #eee; margin:24px 0;">
      <p style="color:#aaa; font-size:12px;">If you weren't expecting this invitation, you can safely ignore this email.</p>
    </div>
  </body>
</html>`, name, invitedBy, titleCase(role), email, tempPassword)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
