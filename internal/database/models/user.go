package models

import "github.com/google/uuid"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleEmployee UserRole = "employee"
)

// ValidRole reports whether s is one of the closed set of roles.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	Base
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	CompanyID    uuid.UUID `gorm:"type:uuid;index;not null" json:"company_id"`

	// IsActive is false until the registration OTP is verified. Invited
	// users start active but must change their temporary password.
	IsActive           bool `gorm:"default:false" json:"is_active"`
	MustChangePassword bool `gorm:"default:false" json:"must_change_password"`

	// Relationships
	Company *Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

func (User) TableName() string {
	return "users"
}
