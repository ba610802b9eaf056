package auth

// Role is an account's authorization rank. The set is closed: the roster
// service has exactly two administrative tiers and no extensible permission
// graph.
type Role string

const (
	// RoleAdmin can reach admin-gated routes.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin can reach every gated route and is the only role allowed
	// to manage other accounts.
	RoleSuperAdmin Role = "superAdmin"
)

var roleHierarchy = map[Role]int{
	RoleAdmin:      1,
	RoleSuperAdmin: 2,
}

// IsValid checks if the role is one of the predefined valid roles.
func (r Role) IsValid() bool {
	_, ok := roleHierarchy[r]
	return ok
}

// IsAtLeast checks if this role meets the minimum required level. Unknown
// roles rank below everything, so a corrupted role value always fails closed.
func (r Role) IsAtLeast(minRole Role) bool {
	currentLevel, ok := roleHierarchy[r]
	if !ok {
		return false
	}

	minLevel, ok := roleHierarchy[minRole]
	if !ok {
		return false
	}

	return currentLevel >= minLevel
}

// AllRoles returns the predefined roles in ascending rank order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleSuperAdmin}
}

// ParseRole safely parses a string into a Role.
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}
