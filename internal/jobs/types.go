package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names
const (
	TypeEmailOTP    = "email:otp"
	TypeEmailInvite = "email:invite"
	TypeOTPCleanup  = "otp:cleanup"
)

// EmailOTPPayload carries a committed OTP to the delivery worker.
type EmailOTPPayload struct {
	To      string `json:"to"`
	Code    string `json:"code"`
	Subject string `json:"subject"`
	Heading string `json:"heading"`
	Line    string `json:"line"`
}

func NewEmailOTPTask(payload EmailOTPPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailOTP, data), nil
}

// EmailInvitePayload carries invite credentials to the delivery worker.
type EmailInvitePayload struct {
	To           string `json:"to"`
	Name         string `json:"name"`
	TempPassword string `json:"temp_password"`
	Role         string `json:"role"`
	InvitedBy    string `json:"invited_by"`
}

func NewEmailInviteTask(payload EmailInvitePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeEmailInvite, data), nil
}

// OTPCleanupPayload is empty - the handler sweeps the whole table.
type OTPCleanupPayload struct{}

func NewOTPCleanupTask() *asynq.Task {
	return asynq.NewTask(TypeOTPCleanup, nil)
}
