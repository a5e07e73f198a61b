package auth

import "github.com/voltask/tasksphere/internal/database/models"

// Capability names an operation gated by role. Row-level scoping (an
// employee seeing only tasks assigned to them) lives in the task service;
// the table below answers the pure role question.
type Capability string

const (
	CapTaskCreate     Capability = "task:create"
	CapTaskAssign     Capability = "task:assign"
	CapTaskDelete     Capability = "task:delete"
	CapUserInvite     Capability = "user:invite"
	CapUserDeactivate Capability = "user:deactivate"
)

var capabilities = map[models.UserRole]map[Capability]bool{
	models.RoleAdmin: {
		CapTaskCreate:     true,
		CapTaskAssign:     true,
		CapTaskDelete:     true,
		CapUserInvite:     true,
		CapUserDeactivate: true,
	},
	models.RoleManager: {
		CapTaskCreate: true,
		CapTaskAssign: true,
	},
	models.RoleEmployee: {},
}

// Can reports whether the role grants the capability. Unknown roles get
// nothing.
func Can(role models.UserRole, cap Capability) bool {
	return capabilities[role][cap]
}
