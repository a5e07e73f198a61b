package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/database/models"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidResetToken covers bad signatures, expiry and wrong token
	// type on the password-reset path.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// resetTokenTTL bounds the window between OTP verification and the actual
// password overwrite.
const resetTokenTTL = 15 * time.Minute

const resetTokenType = "pw_reset"

// Claims are embedded in session tokens: identity, tenant and role.
type Claims struct {
	UserID    uuid.UUID       `json:"user_id"`
	CompanyID uuid.UUID       `json:"company_id"`
	Role      models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// ResetClaims are embedded in short-lived password-reset tokens. They carry
// only the subject and a type tag so a session token can never be replayed
// as a reset credential.
type ResetClaims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

func (s *JWTService) GenerateToken(userID, companyID uuid.UUID, role models.UserRole) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "tasksphere",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateResetToken issues a 15-minute bearer token proving OTP-verified
// intent to reset the given user's password.
func (s *JWTService) GenerateResetToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := ResetClaims{
		TokenType: resetTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "tasksphere",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateResetToken checks signature, expiry and the pw_reset type tag,
// returning the subject user ID.
func (s *JWTService) ValidateResetToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidResetToken
		}
		return s.secret, nil
	})

	if err != nil {
		return uuid.Nil, ErrInvalidResetToken
	}

	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid || claims.TokenType != resetTokenType {
		return uuid.Nil, ErrInvalidResetToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidResetToken
	}

	return userID, nil
}
