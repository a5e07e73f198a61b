package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/api/dto"
	"github.com/voltask/tasksphere/internal/api/middleware"
	"github.com/voltask/tasksphere/internal/database/models"
	"github.com/voltask/tasksphere/internal/tasks"
)

type TaskHandler struct {
	taskService *tasks.Service
}

func NewTaskHandler(taskService *tasks.Service) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func actorFrom(r *http.Request) tasks.Actor {
	ctx := r.Context()
	return tasks.Actor{
		UserID:    middleware.GetUserID(ctx),
		CompanyID: middleware.GetCompanyID(ctx),
		Role:      middleware.GetUserRole(ctx),
	}
}

// Create handles POST /api/v1/tasks (admin/manager).
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	input := tasks.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.AssignedTo != nil && *req.AssignedTo != "" {
		id, _ := uuid.Parse(*req.AssignedTo)
		input.AssignedTo = &id
	}

	task, err := h.taskService.Create(r.Context(), actorFrom(r), input)
	if err != nil {
		switch {
		case errors.Is(err, tasks.ErrAssigneeNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Assignee not found in your company"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create task"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, dto.TaskToResponse(task))
}

// List handles GET /api/v1/tasks with skip/limit/search query params.
// Employees get only tasks assigned to them.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	params := tasks.ListParams{
		Skip:   skip,
		Limit:  limit,
		Search: r.URL.Query().Get("search"),
	}
	params.Normalize()

	list, total, err := h.taskService.List(r.Context(), actorFrom(r), params)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to list tasks"})
		return
	}

	response := make([]dto.TaskResponse, len(list))
	for i := range list {
		response[i] = dto.TaskToResponse(&list[i])
	}

	writeJSON(w, http.StatusOK, dto.PaginatedResponse{
		Data:  response,
		Total: total,
		Skip:  params.Skip,
		Limit: params.Limit,
	})
}

// Update handles PATCH /api/v1/tasks/{id}. Partial: only provided fields
// change.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	var req dto.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	input := tasks.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.taskService.Update(r.Context(), actorFrom(r), taskID, input)
	if err != nil {
		switch {
		case errors.Is(err, tasks.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Task not found"})
		case errors.Is(err, tasks.ErrNotAssignee):
			writeJSON(w, http.StatusForbidden, dto.ErrorResponse{Error: "You can only update tasks assigned to you"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update task"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.TaskToResponse(task))
}

// Assign handles PATCH /api/v1/tasks/{id}/assign (admin/manager).
func (h *TaskHandler) Assign(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	var req dto.AssignTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Details: errs})
		return
	}

	assigneeID, _ := uuid.Parse(req.AssignedTo)

	task, err := h.taskService.Assign(r.Context(), actorFrom(r), taskID, assigneeID)
	if err != nil {
		switch {
		case errors.Is(err, tasks.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Task not found"})
		case errors.Is(err, tasks.ErrAssigneeNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Assignee not found in your company"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to assign task"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.TaskToResponse(task))
}

// Delete handles DELETE /api/v1/tasks/{id} (admin only).
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	taskID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid task ID"})
		return
	}

	if err := h.taskService.Delete(r.Context(), actorFrom(r), taskID); err != nil {
		switch {
		case errors.Is(err, tasks.ErrTaskNotFound):
			writeJSON(w, http.StatusNotFound, dto.ErrorResponse{Error: "Task not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete task"})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
