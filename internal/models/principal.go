package models

// Capability names an action a role may perform
type Capability string

const (
	CapManageUsers      Capability = "users:manage"
	CapDeleteUsers      Capability = "users:delete"
	CapManageAttendance Capability = "attendance:manage"
	CapManageFees       Capability = "fees:manage"
	CapManageCatalog    Capability = "catalog:manage"
	CapAssignPlans      Capability = "plans:assign"
)

var roleCapabilities = map[UserRole]map[Capability]bool{
	RoleAdmin: {
		CapManageUsers:      true,
		CapDeleteUsers:      true,
		CapManageAttendance: true,
		CapManageFees:       true,
		CapManageCatalog:    true,
		CapAssignPlans:      true,
	},
	RoleTrainer: {
		CapManageAttendance: true,
		CapManageFees:       true,
		CapManageCatalog:    true,
		CapAssignPlans:      true,
	},
	RoleUser: {},
}

// Principal is the authenticated caller, built once by the auth middleware
type Principal struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Role          UserRole `json:"role"`
	AccountNumber string   `json:"accountNumber"`
}

// Can reports whether the principal's role grants the capability
func (p Principal) Can(capability Capability) bool {
	return roleCapabilities[p.Role][capability]
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanActOn reports whether the principal may act on the given user's records:
// always for their own, otherwise only with the capability.
func (p Principal) CanActOn(userID string, capability Capability) bool {
	return p.ID == userID || p.Can(capability)
}
