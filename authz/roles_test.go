package authz_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/testdeck/session-gateway/authz"
)

func TestResolveRoles(t *testing.T) {
	tests := []struct {
		name        string
		permissions []string
		want        []authz.Role
	}{
		{
			name:        "empty permission set yields no roles",
			permissions: nil,
			want:        []authz.Role{},
		},
		{
			name:        "full user management grants administrator only",
			permissions: []string{"add_user", "change_user", "delete_user"},
			want:        []authz.Role{authz.RoleAdministrator},
		},
		{
			name:        "partial user management grants nothing",
			permissions: []string{"add_user", "change_user"},
			want:        []authz.Role{},
		},
		{
			name:        "script and execution permissions grant developer and qa",
			permissions: []string{"add_script", "change_script", "add_execution_test", "change_execution_test"},
			want:        []authz.Role{authz.RoleDeveloper, authz.RoleQA},
		},
		{
			name:        "dashboard and global view grant manager",
			permissions: []string{"view_dashboard", "view_global_view"},
			want:        []authz.Role{authz.RoleManager},
		},
		{
			name:        "project permissions grant project lead",
			permissions: []string{"add_project", "change_project"},
			want:        []authz.Role{authz.RoleProjectLead},
		},
		{
			name:        "unknown permissions are ignored",
			permissions: []string{"fly_to_the_moon", "add_project", "change_project"},
			want:        []authz.Role{authz.RoleProjectLead},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			roles := authz.ResolveRoles(authz.NewPermissionSet(tc.permissions...))
			require.ElementsMatch(t, tc.want, roles.List())
		})
	}
}

func TestResolveRolesIsPure(t *testing.T) {
	permissions := authz.NewPermissionSet("add_user", "change_user", "delete_user", "add_script", "change_script")

	first := authz.ResolveRoles(permissions)
	second := authz.ResolveRoles(permissions)

	require.Equal(t, first, second)
	require.ElementsMatch(t, []authz.Role{authz.RoleAdministrator, authz.RoleDeveloper}, first.List())
}

func TestPermissionSet(t *testing.T) {
	set := authz.NewPermissionSet("view_dashboard", "view_dashboard", "add_user")

	require.Len(t, set, 2, "duplicates collapse")
	require.True(t, set.Has("view_dashboard"))
	require.False(t, set.Has("view_global_view"))
	require.True(t, set.HasAny("missing", "add_user"))
	require.False(t, set.HasAny("missing", "also_missing"))
	require.True(t, set.HasAll("view_dashboard", "add_user"))
	require.False(t, set.HasAll("view_dashboard", "missing"))
	require.Equal(t, []string{"add_user", "view_dashboard"}, set.List())
}
