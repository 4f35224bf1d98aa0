// internal/models/roles.go
package models

// Role is the closed set of user roles in the system.
type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

// Permission names a guarded operation group.
type Permission string

const (
	PermissionManageUsers    Permission = "users:manage"
	PermissionManageProjects Permission = "projects:manage"
	PermissionManageEvents   Permission = "events:manage"
)

// rolePermissions is the single place the role matrix lives. Volunteers
// share project/event mutation rights with admins; donors hold no write
// permissions beyond the open routes.
var rolePermissions = map[Role]map[Permission]bool{
	RoleAdmin: {
		PermissionManageUsers:    true,
		PermissionManageProjects: true,
		PermissionManageEvents:   true,
	},
	RoleVolunteer: {
		PermissionManageProjects: true,
		PermissionManageEvents:   true,
	},
	RoleDonor: {},
}

func (r Role) IsValid() bool {
	switch r {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

func (r Role) HasPermission(p Permission) bool {
	perms, ok := rolePermissions[r]
	if !ok {
		return false
	}
	return perms[p]
}

func (r Role) String() string {
	return string(r)
}

// AllRoles returns every valid role.
func AllRoles() []Role {
	return []Role{RoleDonor, RoleVolunteer, RoleAdmin}
}

// RoleNames returns the role values as strings, for enum rules.
func RoleNames() []string {
	roles := AllRoles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return names
}

// RoleFromString converts a raw string into a Role.
func RoleFromString(role string) (Role, bool) {
	r := Role(role)
	if r.IsValid() {
		return r, true
	}
	return "", false
}
