package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValidity(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("moderator").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRolePermissionMatrix(t *testing.T) {
	cases := []struct {
		role       Role
		permission Permission
		allowed    bool
	}{
		{RoleAdmin, PermissionManageUsers, true},
		{RoleAdmin, PermissionManageProjects, true},
		{RoleAdmin, PermissionManageEvents, true},
		{RoleVolunteer, PermissionManageProjects, true},
		{RoleVolunteer, PermissionManageEvents, true},
		{RoleVolunteer, PermissionManageUsers, false},
		{RoleDonor, PermissionManageProjects, false},
		{RoleDonor, PermissionManageEvents, false},
		{RoleDonor, PermissionManageUsers, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.role.HasPermission(tc.permission),
			"%s / %s", tc.role, tc.permission)
	}
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	assert.False(t, Role("superuser").HasPermission(PermissionManageProjects))
}

func TestRoleFromString(t *testing.T) {
	r, ok := RoleFromString("volunteer")
	assert.True(t, ok)
	assert.Equal(t, RoleVolunteer, r)

	_, ok = RoleFromString("root")
	assert.False(t, ok)
}
