package authz_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/testdeck/session-gateway/authz"
)

func TestGateAllows(t *testing.T) {
	tests := []struct {
		name        string
		permissions []string
		capability  authz.Capability
		want        bool
	}{
		{
			name:        "direct permission grants capability",
			permissions: []string{"view_company"},
			capability:  authz.CapManageCompanies,
			want:        true,
		},
		{
			name:        "project lead role grants manage projects without direct permission",
			permissions: []string{"add_project", "change_project"},
			capability:  authz.CapManageProjects,
			want:        true,
		},
		{
			name:        "empty permission set denies manage projects",
			permissions: nil,
			capability:  authz.CapManageProjects,
			want:        false,
		},
		{
			name:        "manager role grants global view",
			permissions: []string{"view_dashboard", "view_global_view"},
			capability:  authz.CapViewGlobalView,
			want:        true,
		},
		{
			name:        "qa role grants test executions",
			permissions: []string{"add_execution_test", "change_execution_test"},
			capability:  authz.CapManageTestExecutions,
			want:        true,
		},
		{
			name:        "developer role grants scripts",
			permissions: []string{"add_script", "change_script"},
			capability:  authz.CapManageScripts,
			want:        true,
		},
		{
			name:        "developer role grants execution results",
			permissions: []string{"add_script", "change_script"},
			capability:  authz.CapManageExecutionResults,
			want:        true,
		},
		{
			name:        "developer role does not grant users",
			permissions: []string{"add_script", "change_script"},
			capability:  authz.CapManageUsers,
			want:        false,
		},
		{
			name:        "administrator role grants every admin-only capability",
			permissions: []string{"add_user", "change_user", "delete_user"},
			capability:  authz.CapManageConfiguration,
			want:        true,
		},
		{
			name:        "subaxis view permission grants axes",
			permissions: []string{"view_subaxis"},
			capability:  authz.CapManageAxes,
			want:        true,
		},
		{
			name:        "unknown capability is denied",
			permissions: []string{"add_user", "change_user", "delete_user"},
			capability:  authz.Capability("launch_rockets"),
			want:        false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gate := authz.NewGate(authz.NewPermissionSet(tc.permissions...), false)
			require.Equal(t, tc.want, gate.Allows(tc.capability))
		})
	}
}

func TestGatePredicates(t *testing.T) {
	gate := authz.NewGate(authz.NewPermissionSet("view_dashboard", "view_global_view"), false)

	require.True(t, gate.HasPermission("view_dashboard"))
	require.False(t, gate.HasPermission("view_user"))
	require.True(t, gate.HasAnyPermission("view_user", "view_global_view"))
	require.True(t, gate.HasRole(authz.RoleManager))
	require.False(t, gate.HasRole(authz.RoleAdministrator))
}

func TestSuperuserAsymmetry(t *testing.T) {
	// A superuser with an empty permission set passes the coarse legacy
	// checks but still fails the fine-grained capability rules. This mirrors
	// the production rule table and is intentionally not "fixed".
	gate := authz.NewGate(authz.NewPermissionSet(), true)

	require.True(t, gate.HasSuperAdminAccess())
	require.True(t, gate.HasAdminAccess())
	require.False(t, gate.Allows(authz.CapManageUsers))
	require.False(t, gate.Allows(authz.CapViewDashboard))
}

func TestAdminAccessViaRole(t *testing.T) {
	gate := authz.NewGate(authz.NewPermissionSet("add_user", "change_user", "delete_user"), false)

	require.True(t, gate.HasAdminAccess())
	require.False(t, gate.HasSuperAdminAccess())
}

func TestZeroGateDeniesEverything(t *testing.T) {
	var gate authz.Gate

	require.False(t, gate.Allows(authz.CapViewDashboard))
	require.False(t, gate.HasPermission("view_dashboard"))
	require.False(t, gate.HasAdminAccess())
}
