package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/api/dto"
	"github.com/voltask/tasksphere/internal/api/middleware"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/database/models"
)

type UserHandler struct {
	authService *auth.Service
}

func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{authService: authService}
}

// Invite handles POST /api/v1/users/invite (admin only). The temporary
// password goes out by email and never appears in the response.
func (h *UserHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req dto.InviteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	inviter, err := h.authService.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return
	}

	user, err := h.authService.InviteUser(r.Context(), inviter, auth.InviteInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.UserRole(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrDuplicateEmail):
			writeJSON(w, http.StatusConflict, dto.ErrorResponse{Error: "Email already registered"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Invite failed"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserToResponse(user))
}

// List handles GET /api/v1/users - all users in the caller's company.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := middleware.GetCompanyID(r.Context())

	users, err := h.authService.ListUsers(r.Context(), companyID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list users"})
		return
	}

	response := make([]dto.UserResponse, len(users))
	for i := range users {
		response[i] = dto.UserToResponse(&users[i])
	}

	writeJSON(w, http.StatusOK, response)
}

// Deactivate handles PATCH /api/v1/users/{id}/deactivate (admin only).
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user ID"})
		return
	}

	callerID := middleware.GetUserID(r.Context())
	companyID := middleware.GetCompanyID(r.Context())

	user, err := h.authService.DeactivateUser(r.Context(), callerID, companyID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrSelfDeactivate):
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Cannot deactivate yourself"})
		case errors.Is(err, auth.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Deactivation failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.UserToResponse(user))
}
