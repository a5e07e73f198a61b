package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voltask/tasksphere/internal/auth"
	"github.com/voltask/tasksphere/internal/database/models"
)

func TestCan(t *testing.T) {
	tests := []struct {
		name string
		role models.UserRole
		cap  auth.Capability
		want bool
	}{
		{"admin creates tasks", models.RoleAdmin, auth.CapTaskCreate, true},
		{"admin assigns tasks", models.RoleAdmin, auth.CapTaskAssign, true},
		{"admin deletes tasks", models.RoleAdmin, auth.CapTaskDelete, true},
		{"admin invites users", models.RoleAdmin, auth.CapUserInvite, true},
		{"admin deactivates users", models.RoleAdmin, auth.CapUserDeactivate, true},
		{"manager creates tasks", models.RoleManager, auth.CapTaskCreate, true},
		{"manager assigns tasks", models.RoleManager, auth.CapTaskAssign, true},
		{"manager cannot delete tasks", models.RoleManager, auth.CapTaskDelete, false},
		{"manager cannot invite users", models.RoleManager, auth.CapUserInvite, false},
		{"manager cannot deactivate users", models.RoleManager, auth.CapUserDeactivate, false},
		{"employee cannot create tasks", models.RoleEmployee, auth.CapTaskCreate, false},
		{"employee cannot assign tasks", models.RoleEmployee, auth.CapTaskAssign, false},
		{"employee cannot delete tasks", models.RoleEmployee, auth.CapTaskDelete, false},
		{"unknown role gets nothing", models.UserRole("superuser"), auth.CapTaskCreate, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auth.Can(tt.role, tt.cap))
		})
	}
}
