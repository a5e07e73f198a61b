package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/database/models"
	"github.com/voltask/tasksphere/internal/mail"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountNotVerified = errors.New("account not verified")
	ErrIncorrectPassword  = errors.New("old password is incorrect")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDeactivate     = errors.New("cannot deactivate yourself")
)

// Service orchestrates registration, two-step login, password reset and the
// tenant user lifecycle. It composes the OTP engine, the token service and
// the mailer; all state changes commit before any mail is dispatched.
type Service struct {
	db     *gorm.DB
	jwt    *JWTService
	otp    *OTPService
	mailer mail.Mailer
	logger *slog.Logger
}

func NewService(db *gorm.DB, jwt *JWTService, otp *OTPService, mailer mail.Mailer, logger *slog.Logger) *Service {
	return &Service{db: db, jwt: jwt, otp: otp, mailer: mailer, logger: logger}
}

type RegisterInput struct {
	CompanyName string
	Name        string
	Email       string
	Password    string
}

type InviteInput struct {
	Name  string
	Email string
	Role  models.UserRole
}

type LoginResult struct {
	Token              string
	MustChangePassword bool
	User               *models.User
}

// Register creates a company and its first admin in one transaction. The
// admin starts inactive and receives an email-verification OTP.
func (s *Service) Register(ctx context.Context, input RegisterInput) error {
	existing, err := s.findUserByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return err
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company := models.Company{Name: input.CompanyName}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		user = models.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			CompanyID:    company.ID,
			IsActive:     false,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return fmt.Errorf("registering company and admin: %w", err)
	}

	code, err := s.otp.Issue(ctx, user.ID, models.PurposeEmailVerification)
	if err != nil {
		return err
	}

	s.sendOTP(ctx, user.Email, code,
		"Verify your TaskSphere account",
		"Welcome to TaskSphere!",
		"Please verify your email address using the OTP below:")
	return nil
}

// VerifyEmail consumes an email_verification OTP and activates the account.
// Unknown emails fail with the same generic OTP error as a wrong code.
func (s *Service) VerifyEmail(ctx context.Context, email, code string) error {
	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidOTP
	}

	if err := s.otp.Verify(ctx, user.ID, code, models.PurposeEmailVerification); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(user).Update("is_active", true).Error
}

// InitiateLogin is step one of the two-step login: it validates the first
// factor and dispatches a login OTP. No token is issued here.
func (s *Service) InitiateLogin(ctx context.Context, email, password string) error {
	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	// Same error for unknown email and wrong password, no enumeration.
	if user == nil || !CheckPassword(password, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if !user.IsActive {
		return ErrAccountNotVerified
	}

	code, err := s.otp.Issue(ctx, user.ID, models.PurposeLogin)
	if err != nil {
		return err
	}

	s.sendOTP(ctx, user.Email, code,
		"Your TaskSphere Login OTP",
		"Login Verification",
		"Use the OTP below to complete your login:")
	return nil
}

// VerifyLoginOTP is step two: a correct login OTP yields a session token
// embedding identity, tenant and role.
func (s *Service) VerifyLoginOTP(ctx context.Context, email, code string) (*LoginResult, error) {
	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidOTP
	}

	if err := s.otp.Verify(ctx, user.ID, code, models.PurposeLogin); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.CompanyID, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:              token,
		MustChangePassword: user.MustChangePassword,
		User:               user,
	}, nil
}

// RequestPasswordReset issues a password_reset OTP. Unknown emails are a
// silent no-op so the response never reveals whether an account exists.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		s.logger.Debug("password reset requested for unknown email")
		return nil
	}

	code, err := s.otp.Issue(ctx, user.ID, models.PurposePasswordReset)
	if err != nil {
		return err
	}

	s.sendOTP(ctx, user.Email, code,
		"Your TaskSphere Password Reset OTP",
		"Password Reset",
		"Use the OTP below to reset your password:")
	return nil
}

// VerifyResetOTP trades a valid password_reset OTP for a short-lived reset
// token carrying only the user ID.
func (s *Service) VerifyResetOTP(ctx context.Context, email, code string) (string, error) {
	user, err := s.findUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidOTP
	}

	if err := s.otp.Verify(ctx, user.ID, code, models.PurposePasswordReset); err != nil {
		return "", err
	}

	return s.jwt.GenerateResetToken(user.ID)
}

// ResetPassword consumes a reset token and overwrites the password hash. The
// token is a bearer credential bounded only by its 15-minute TTL.
func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	userID, err := s.jwt.ValidateResetToken(resetToken)
	if err != nil {
		return err
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&user).Update("password_hash", hash).Error
}

// ChangePassword requires the correct old password, then sets the new hash
// and clears the must-change flag set by invites.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !CheckPassword(oldPassword, user.PasswordHash) {
		return ErrIncorrectPassword
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&user).Updates(map[string]interface{}{
		"password_hash":        hash,
		"must_change_password": false,
	}).Error
}

// InviteUser creates an active user in the inviter's company with a
// generated temporary password that is emailed and never returned.
func (s *Service) InviteUser(ctx context.Context, inviter *models.User, input InviteInput) (*models.User, error) {
	existing, err := s.findUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	tempPassword, err := GenerateTempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(tempPassword)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:               input.Name,
		Email:              input.Email,
		PasswordHash:       hash,
		Role:               input.Role,
		CompanyID:          inviter.CompanyID,
		IsActive:           true,
		MustChangePassword: true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("creating invited user: %w", err)
	}

	if err := s.mailer.SendInvite(ctx, user.Email, user.Name, tempPassword, string(user.Role), inviter.Name); err != nil {
		// Delivery is best-effort; the user record already committed.
		s.logger.Error("failed to send invite email", "error", err, "user_id", user.ID)
	}

	return &user, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Company").
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) ListUsers(ctx context.Context, companyID uuid.UUID) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// DeactivateUser flips is_active off for a user in the caller's company.
// Cross-tenant targets look identical to missing ones.
func (s *Service) DeactivateUser(ctx context.Context, callerID, companyID, targetID uuid.UUID) (*models.User, error) {
	if targetID == callerID {
		return nil, ErrSelfDeactivate
	}

	var user models.User
	if err := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", targetID, companyID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&user).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) findUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) sendOTP(ctx context.Context, to, code, subject, heading, line string) {
	if err := s.mailer.SendOTP(ctx, to, code, subject, heading, line); err != nil {
		// Never surfaced: the OTP row already committed.
		s.logger.Error("failed to send otp email", "error", err, "subject", subject)
	}
}
