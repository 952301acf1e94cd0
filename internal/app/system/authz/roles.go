// internal/app/system/authz/roles.go
package authz

import "github.com/dalemusser/parishhub/internal/domain/models"

// Capabilities enumerates the management permissions a role carries.
type Capabilities struct {
	ManageUsers        bool
	ManageLessons      bool
	ManageClasses      bool
	ViewReports        bool
	ManageOrganization bool
}

// rolePermissions is the capability table. Only admins carry management
// permissions; every other role acts through its route-level role checks.
var rolePermissions = map[models.Role]Capabilities{
	models.RoleAdmin: {
		ManageUsers:        true,
		ManageLessons:      true,
		ManageClasses:      true,
		ViewReports:        true,
		ManageOrganization: true,
	},
	models.RoleClerk:      {},
	models.RoleRegular:    {},
	models.RoleInstructor: {},
	models.RoleMember:     {},
}

// Can returns the capability set for a role. Unknown roles get no
// capabilities.
func Can(role models.Role) Capabilities {
	return rolePermissions[role]
}
