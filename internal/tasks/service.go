package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voltask/tasksphere/internal/database/models"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound also covers cross-tenant IDs: another company's task
	// is indistinguishable from a missing one.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAssigneeNotFound means the assignee does not exist in the caller's
	// company.
	ErrAssigneeNotFound = errors.New("assignee not found in your company")

	// ErrNotAssignee means an employee touched a task not assigned to them.
	ErrNotAssignee = errors.New("task is not assigned to you")
)

// Actor is the authenticated caller, as decoded from the session token.
type Actor struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      models.UserRole
}

// Service implements tenant- and role-scoped task CRUD. Role capability
// gating (who may call create/assign/delete at all) happens in middleware;
// this layer enforces tenant isolation and per-row assignment scoping.
type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

type CreateInput struct {
	Title       string
	Description string
	AssignedTo  *uuid.UUID
}

type UpdateInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
}

type ListParams struct {
	Skip   int
	Limit  int
	Search string
}

func (p *ListParams) Normalize() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Create makes a task in the actor's company. An assignee, when given, must
// belong to the same company.
func (s *Service) Create(ctx context.Context, actor Actor, input CreateInput) (*models.Task, error) {
	if input.AssignedTo != nil {
		if err := s.checkAssignee(ctx, *input.AssignedTo, actor.CompanyID); err != nil {
			return nil, err
		}
	}

	task := models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		CompanyID:   actor.CompanyID,
		CreatedBy:   actor.UserID,
		AssignedTo:  input.AssignedTo,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return &task, nil
}

// List returns tasks in the actor's company. Employees see only tasks
// assigned to them; search is a case-insensitive title substring match.
func (s *Service) List(ctx context.Context, actor Actor, params ListParams) ([]models.Task, int64, error) {
	params.Normalize()

	query := s.db.WithContext(ctx).Model(&models.Task{}).
		Where("company_id = ?", actor.CompanyID)

	if actor.Role == models.RoleEmployee {
		query = query.Where("assigned_to = ?", actor.UserID)
	}

	if params.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	if err := query.
		Order("created_at DESC").
		Offset(params.Skip).
		Limit(params.Limit).
		Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update applies a partial update. Only fields present in input change;
// updated_at refreshes on any successful mutation.
func (s *Service) Update(ctx context.Context, actor Actor, taskID uuid.UUID, input UpdateInput) (*models.Task, error) {
	task, err := s.getTenantTask(ctx, taskID, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleEmployee {
		if task.AssignedTo == nil || *task.AssignedTo != actor.UserID {
			return nil, ErrNotAssignee
		}
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if len(updates) == 0 {
		return task, nil
	}
	updates["updated_at"] = time.Now()

	if err := s.db.WithContext(ctx).Model(task).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}
	return task, nil
}

// Assign reassigns a task to a user in the actor's company.
func (s *Service) Assign(ctx context.Context, actor Actor, taskID, assigneeID uuid.UUID) (*models.Task, error) {
	task, err := s.getTenantTask(ctx, taskID, actor.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAssignee(ctx, assigneeID, actor.CompanyID); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(task).Updates(map[string]interface{}{
		"assigned_to": assigneeID,
		"updated_at":  time.Now(),
	}).Error; err != nil {
		return nil, fmt.Errorf("assigning task: %w", err)
	}
	task.AssignedTo = &assigneeID
	return task, nil
}

// Delete removes a task in the actor's company.
func (s *Service) Delete(ctx context.Context, actor Actor, taskID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", taskID, actor.CompanyID).
		Delete(&models.Task{})
	if res.Error != nil {
		return fmt.Errorf("deleting task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *Service) getTenantTask(ctx context.Context, taskID, companyID uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := s.db.WithContext(ctx).
		Where("id = ? AND company_id = ?", taskID, companyID).
		First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (s *Service) checkAssignee(ctx context.Context, assigneeID, companyID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND company_id = ?", assigneeID, companyID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrAssigneeNotFound
	}
	return nil
}
