package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/database/models"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
}

func (r CreateTaskRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if r.AssignedTo != nil && *r.AssignedTo != "" {
		if _, err := uuid.Parse(*r.AssignedTo); err != nil {
			errors["assigned_to"] = "Invalid assignee ID format"
		}
	}

	return errors
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

func (r UpdateTaskRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title != nil && *r.Title == "" {
		errors["title"] = "Title cannot be empty"
	}
	if r.Status != nil && !models.ValidTaskStatus(*r.Status) {
		errors["status"] = "Status must be pending, in_progress, or done"
	}

	return errors
}

type AssignTaskRequest struct {
	AssignedTo string `json:"assigned_to"`
}

func (r AssignTaskRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.AssignedTo == "" {
		errors["assigned_to"] = "Assignee is required"
	} else if _, err := uuid.Parse(r.AssignedTo); err != nil {
		errors["assigned_to"] = "Invalid assignee ID format"
	}

	return errors
}

type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Status      string  `json:"status"`
	CompanyID   string  `json:"company_id"`
	CreatedBy   string  `json:"created_by"`
	AssignedTo  *string `json:"assigned_to,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func TaskToResponse(t *models.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CompanyID:   t.CompanyID.String(),
		CreatedBy:   t.CreatedBy.String(),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.AssignedTo != nil {
		s := t.AssignedTo.String()
		resp.AssignedTo = &s
	}
	return resp
}
