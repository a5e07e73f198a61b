package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/database/models"
)

// Authenticator defines the auth workflows consumed by the HTTP handlers.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) error
	VerifyEmail(ctx context.Context, email, code string) error
	InitiateLogin(ctx context.Context, email, password string) error
	VerifyLoginOTP(ctx context.Context, email, code string) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	InviteUser(ctx context.Context, inviter *models.User, input InviteInput) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenService defines the signed-token operations.
type TokenService interface {
	GenerateToken(userID, companyID uuid.UUID, role models.UserRole) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	GenerateResetToken(userID uuid.UUID) (string, error)
	ValidateResetToken(tokenString string) (uuid.UUID, error)
}

// OTPIssuer defines the OTP engine operations.
type OTPIssuer interface {
	Issue(ctx context.Context, userID uuid.UUID, purpose models.OTPPurpose) (string, error)
	Verify(ctx context.Context, userID uuid.UUID, code string, purpose models.OTPPurpose) error
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ TokenService  = (*JWTService)(nil)
	_ OTPIssuer     = (*OTPService)(nil)
)
