package authz

// Capability is a named boolean check gating a feature screen or action.
type Capability string

const (
	CapViewDashboard            Capability = "view_dashboard"
	CapViewGlobalView           Capability = "view_global_view"
	CapManageCompanies          Capability = "manage_companies"
	CapManageActivitySectors    Capability = "manage_activity_sectors"
	CapManageProjects           Capability = "manage_projects"
	CapManageConfiguration      Capability = "manage_configuration"
	CapManageEmailNotifications Capability = "manage_email_notifications"
	CapManageUsers              Capability = "manage_users"
	CapManageGroups             Capability = "manage_groups"
	CapManageAxes               Capability = "manage_axes"
	CapManageScripts            Capability = "manage_scripts"
	CapManageTestConfigurations Capability = "manage_test_configurations"
	CapManageTestExecutions     Capability = "manage_test_executions"
	CapManageExecutionResults   Capability = "manage_execution_results"
)

// capabilityRule grants its capability when any listed permission is present
// OR any listed role is held.
type capabilityRule struct {
	permissions []string
	roles       []Role
}

var capabilityRules = map[Capability]capabilityRule{
	CapViewDashboard: {
		permissions: []string{"view_dashboard"},
		roles:       []Role{RoleAdministrator, RoleQA, RoleManager, RoleProjectLead},
	},
	CapViewGlobalView: {
		permissions: []string{"view_global_view"},
		roles:       []Role{RoleAdministrator, RoleManager},
	},
	CapManageCompanies: {
		permissions: []string{"view_company"},
		roles:       []Role{RoleAdministrator},
	},
	CapManageActivitySectors: {
		permissions: []string{"view_activity_sector"},
		roles:       []Role{RoleAdministrator},
	},
	CapManageProjects: {
		permissions: []string{"view_project", "add_project", "change_project"},
		roles:       []Role{RoleAdministrator, RoleProjectLead, RoleManager},
	},
	CapManageConfiguration: {
		permissions: []string{"view_configuration"},
		roles:       []Role{RoleAdministrator},
	},
	CapManageEmailNotifications: {
		permissions: []string{"view_email_notification"},
		roles:       []Role{RoleAdministrator},
	},
	CapManageUsers: {
		permissions: []string{"view_user"},
		roles:       []Role{RoleAdministrator},
	},
	CapManageGroups: {
		permissions: []string{"view_custom_group"},
		roles:       []Role{RoleAdministrator},
	},
	CapManageAxes: {
		permissions: []string{"view_axis", "view_subaxis"},
		roles:       []Role{RoleAdministrator},
	},
	CapManageScripts: {
		permissions: []string{"view_script", "add_script", "change_script"},
		roles:       []Role{RoleAdministrator, RoleQA, RoleDeveloper, RoleProjectLead},
	},
	CapManageTestConfigurations: {
		permissions: []string{"view_test_configuration", "add_test_configuration", "change_test_configuration"},
		roles:       []Role{RoleAdministrator, RoleQA},
	},
	CapManageTestExecutions: {
		permissions: []string{"view_test_execution", "add_test_execution", "change_test_execution"},
		roles:       []Role{RoleAdministrator, RoleQA},
	},
	CapManageExecutionResults: {
		permissions: []string{"view_execution_result"},
		roles:       []Role{RoleAdministrator, RoleQA, RoleDeveloper, RoleManager, RoleProjectLead},
	},
}

// Gate evaluates capability checks against a snapshot of the current
// permission and role sets. A zero Gate denies everything.
//
// The superuser flag only feeds the coarse legacy checks, HasAdminAccess and
// HasSuperAdminAccess. It does NOT bypass the per-capability rules: a
// superuser with no granted permissions still fails Allows for the
// fine-grained capabilities. That asymmetry matches the production rule table
// and must not be "fixed" here.
type Gate struct {
	permissions PermissionSet
	roles       RoleSet
	superuser   bool
}

// NewGate builds a gate from the permission set, deriving roles with
// ResolveRoles.
func NewGate(permissions PermissionSet, superuser bool) Gate {
	if permissions == nil {
		permissions = NewPermissionSet()
	}
	return Gate{
		permissions: permissions,
		roles:       ResolveRoles(permissions),
		superuser:   superuser,
	}
}

// Allows evaluates the capability's rule. Unknown capabilities and absent
// evidence both yield false; a capability check never fails.
func (g Gate) Allows(capability Capability) bool {
	rule, ok := capabilityRules[capability]
	if !ok {
		return false
	}
	if g.permissions.HasAny(rule.permissions...) {
		return true
	}
	for _, role := range rule.roles {
		if g.roles.Has(role) {
			return true
		}
	}
	return false
}

func (g Gate) HasPermission(permission string) bool {
	return g.permissions.Has(permission)
}

func (g Gate) HasAnyPermission(permissions ...string) bool {
	return g.permissions.HasAny(permissions...)
}

func (g Gate) HasRole(role Role) bool {
	return g.roles.Has(role)
}

// HasAdminAccess is the coarse legacy check: administrator role or superuser.
func (g Gate) HasAdminAccess() bool {
	return g.roles.Has(RoleAdministrator) || g.superuser
}

// HasSuperAdminAccess is true only for superusers.
func (g Gate) HasSuperAdminAccess() bool {
	return g.superuser
}

// Permissions returns the permission snapshot backing the gate.
func (g Gate) Permissions() PermissionSet {
	return g.permissions
}

// Roles returns the derived role set.
func (g Gate) Roles() RoleSet {
	return g.roles
}
