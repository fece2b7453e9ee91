package domain

// Role is an actor category with exclusive rights to specific transitions.
type Role string

const (
	RolePlanning   Role = "Planning"
	RoleDirector   Role = "Director"
	RoleStructural Role = "Structural"
	RoleCommittee  Role = "Committee"
	RoleReception  Role = "Reception"
	RoleClient     Role = "Client"
)

var allRoles = []Role{
	RolePlanning,
	RoleDirector,
	RoleStructural,
	RoleCommittee,
	RoleReception,
	RoleClient,
}

// AllRoles returns every known role in review-stage order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	for _, known := range allRoles {
		if r == known {
			return true
		}
	}
	return false
}
