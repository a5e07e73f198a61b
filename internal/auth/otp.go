package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/database/models"
	"gorm.io/gorm"
)

// ErrInvalidOTP is deliberately generic: wrong code, expired, already used
// and wrong purpose all surface identically so nothing leaks about which
// condition failed.
var ErrInvalidOTP = errors.New("invalid, expired, or already used OTP")

// otpTTL is the wall-clock validity window for every purpose.
const otpTTL = 5 * time.Minute

var otpCodeMax = big.NewInt(1000000)

// OTPService issues and verifies purpose-scoped one-time passcodes backed by
// the otp_records table.
type OTPService struct {
	db *gorm.DB
}

func NewOTPService(db *gorm.DB) *OTPService {
	return &OTPService{db: db}
}

// GenerateCode returns a uniform random 6-digit code, leading zeros kept.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, otpCodeMax)
	if err != nil {
		return "", fmt.Errorf("generating otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Issue invalidates every unused code for (user, purpose) and persists a
// fresh one, all inside one transaction so a concurrent request can never
// observe two live codes.
func (s *OTPService) Issue(ctx context.Context, userID uuid.UUID, purpose models.OTPPurpose) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.OTPRecord{}).
			Where("user_id = ? AND purpose = ? AND is_used = ?", userID, purpose, false).
			Update("is_used", true).Error; err != nil {
			return err
		}

		record := models.OTPRecord{
			UserID:  userID,
			Code:    code,
			Purpose: purpose,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return "", fmt.Errorf("issuing otp: %w", err)
	}

	return code, nil
}

// Verify accepts a code only if an unused, unexpired record matches user,
// code and purpose. The guarded update doubles as a compare-and-set: the row
// is flipped to used in the same statement that checks is_used, so two
// concurrent verifications of one code cannot both succeed.
func (s *OTPService) Verify(ctx context.Context, userID uuid.UUID, code string, purpose models.OTPPurpose) error {
	cutoff := time.Now().Add(-otpTTL)

	res := s.db.WithContext(ctx).Model(&models.OTPRecord{}).
		Where("user_id = ? AND code = ? AND purpose = ? AND is_used = ? AND created_at >= ?",
			userID, code, purpose, false, cutoff).
		Update("is_used", true)

	if res.Error != nil {
		return fmt.Errorf("verifying otp: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInvalidOTP
	}
	return nil
}

// PurgeStale deletes used records and anything older than maxAge. Run
// periodically from the worker to keep otp_records bounded.
func (s *OTPService) PurgeStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)

	// Unscoped: purge for real, not a soft delete.
	res := s.db.WithContext(ctx).Unscoped().
		Where("is_used = ? OR created_at < ?", true, cutoff).
		Delete(&models.OTPRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("purging otp records: %w", res.Error)
	}
	return res.RowsAffected, nil
}
