// internal/domain/models/roles.go
package models

// Role is a user's role within their organization.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleClerk      Role = "clerk"
	RoleRegular    Role = "regular"
	RoleInstructor Role = "instructor"
	RoleMember     Role = "member"
)

// Roles lists every valid role, in no particular order.
var Roles = []Role{RoleAdmin, RoleClerk, RoleRegular, RoleInstructor, RoleMember}

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleClerk, RoleRegular, RoleInstructor, RoleMember:
		return true
	}
	return false
}
