package models

import "github.com/google/uuid"

type OTPPurpose string

const (
	PurposeEmailVerification OTPPurpose = "email_verification"
	PurposeLogin             OTPPurpose = "login"
	PurposePasswordReset     OTPPurpose = "password_reset"
)

// OTPRecord is a single one-time passcode. Several records may exist for a
// (user, purpose) pair over time; only the newest unused, unexpired one is
// accepted. Codes are stored as strings so leading zeros survive.
type OTPRecord struct {
	Base
	UserID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	Code    string     `gorm:"type:varchar(6);not null" json:"-"`
	Purpose OTPPurpose `gorm:"type:varchar(30);index;not null" json:"purpose"`
	IsUsed  bool       `gorm:"default:false" json:"is_used"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (OTPRecord) TableName() string {
	return "otp_records"
}
