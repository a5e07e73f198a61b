package models

import "github.com/google/uuid"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func ValidTaskStatus(s string) bool {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	Base
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"company_id"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`

	// AssignedTo, when set, must reference a user in the same company.
	AssignedTo *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to,omitempty"`

	// Relationships
	Company  *Company `gorm:"foreignKey:CompanyID" json:"-"`
	Creator  *User    `gorm:"foreignKey:CreatedBy" json:"-"`
	Assignee *User    `gorm:"foreignKey:AssignedTo" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}
