package dto

import (
	"time"

	"github.com/voltask/tasksphere/internal/api/validation"
	"github.com/voltask/tasksphere/internal/database/models"
)

type InviteUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r InviteUserRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Name == "" {
		errors["name"] = "Name is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(r.Email) {
		errors["email"] = "Invalid email format"
	}
	if r.Role == "" {
		errors["role"] = "Role is required"
	} else if !models.ValidRole(r.Role) {
		errors["role"] = "Role must be admin, manager, or employee"
	}

	return errors
}

type UserResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	CompanyID          string `json:"company_id"`
	IsActive           bool   `json:"is_active"`
	MustChangePassword bool   `json:"must_change_password"`
	CreatedAt          string `json:"created_at"`
}

func UserToResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                 u.ID.String(),
		Name:               u.Name,
		Email:              u.Email,
		Role:               string(u.Role),
		CompanyID:          u.CompanyID.String(),
		IsActive:           u.IsActive,
		MustChangePassword: u.MustChangePassword,
		CreatedAt:          u.CreatedAt.Format(time.RFC3339),
	}
}
