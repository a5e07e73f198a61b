package dto

import "github.com/voltask/tasksphere/internal/api/validation"

type RegisterRequest struct {
	CompanyName string `json:"company_name"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.CompanyName == "" {
		errors["company_name"] = "Company name is required"
	}
	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Invalid email format"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	} else if len(r.Password) < 8 {
		errors["password"] = "Password must be at least 8 characters"
	}

	return errors
}

type VerifyEmailRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r VerifyEmailRequest) Validate() map[string]string {
	return validateEmailOTP(r.Email, r.OTP)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type VerifyLoginRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r VerifyLoginRequest) Validate() map[string]string {
	return validateEmailOTP(r.Email, r.OTP)
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r ForgotPasswordRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Invalid email format"
	}
	return errors
}

type VerifyResetOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (r VerifyResetOTPRequest) Validate() map[string]string {
	return validateEmailOTP(r.Email, r.OTP)
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

func (r ResetPasswordRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.ResetToken == "" {
		errors["reset_token"] = "Reset token is required"
	}
	if r.NewPassword == "" {
		errors["new_password"] = "New password is required"
	} else if len(r.NewPassword) < 8 {
		errors["new_password"] = "Password must be at least 8 characters"
	}
	return errors
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if r.OldPassword == "" {
		errors["old_password"] = "Old password is required"
	}
	if r.NewPassword == "" {
		errors["new_password"] = "New password is required"
	} else if len(r.NewPassword) < 8 {
		errors["new_password"] = "Password must be at least 8 characters"
	}
	return errors
}

type TokenResponse struct {
	AccessToken        string `json:"access_token"`
	TokenType          string `json:"token_type"`
	MustChangePassword bool   `json:"must_change_password"`
}

type ResetTokenResponse struct {
	ResetToken string `json:"reset_token"`
	Message    string `json:"message"`
}

func validateEmailOTP(email, otp string) map[string]string {
	errors := make(map[string]string)
	if email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(email) {
		errors["email"] = "Invalid email format"
	}
	if otp == "" {
		errors["otp"] = "OTP is required"
	} else if !validation.IsValidOTP(otp) {
		errors["otp"] = "OTP must be 6 digits"
	}
	return errors
}
