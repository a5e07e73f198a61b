package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/voltask/tasksphere/internal/api/dto"
	"github.com/voltask/tasksphere/internal/api/middleware"
	"github.com/voltask/tasksphere/internal/auth"
)

type AuthHandler struct {
	authService *auth.Service
}

func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	err := h.authService.Register(r.Context(), auth.RegisterInput{
		CompanyName: req.CompanyName,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateEmail):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "Email already registered"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Registration failed"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.SuccessResponse{
		Message: "Registered successfully! Please check your email for the verification OTP.",
	})
}

// VerifyEmail handles POST /api/v1/auth/verify-email
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	if err := h.authService.VerifyEmail(r.Context(), req.Email, req.OTP); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidOTP):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid, expired, or already used OTP"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Verification failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Email verified successfully! You can now log in."})
}

// Login handles POST /api/v1/auth/login - step one of the two-step login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	if err := h.authService.InitiateLogin(r.Context(), req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Invalid email or password"})
		case errors.Is(err, auth.ErrAccountNotVerified):
			writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "Account not verified. Please verify your email first."})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Login failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "OTP sent to your email. Please verify to complete login."})
}

// VerifyLogin handles POST /api/v1/auth/verify-login - step two; the only
// place a session token is issued.
func (h *AuthHandler) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	result, err := h.authService.VerifyLoginOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidOTP):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid, expired, or already used OTP"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Login failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.TokenResponse{
		AccessToken:        result.Token,
		TokenType:          "bearer",
		MustChangePassword: result.MustChangePassword,
	})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password. The response is
// identical whether or not the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Request failed"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{
		Message: "If an account with that email exists, a password reset OTP has been sent.",
	})
}

// VerifyResetOTP handles POST /api/v1/auth/verify-reset-otp
func (h *AuthHandler) VerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyResetOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	token, err := h.authService.VerifyResetOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidOTP):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid, expired, or already used OTP"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Verification failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.ResetTokenResponse{
		ResetToken: token,
		Message:    "OTP verified! You can now reset your password.",
	})
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.ResetToken, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidResetToken):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid or expired reset token"})
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "User not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Reset failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Password reset successfully. You can now log in."})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, dto.UserToResponse(user))
}

// ChangePassword handles PUT /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.authService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, auth.ErrIncorrectPassword):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Old password is incorrect"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Change failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.SuccessResponse{Message: "Password changed successfully."})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
