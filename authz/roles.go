package authz

import "sort"

// Role is a coarse tag derived from the permission set. Roles are not
// exclusive; a user holds every role whose rule is fully satisfied.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleDeveloper     Role = "developer"
	RoleQA            Role = "qa"
	RoleManager       Role = "manager"
	RoleProjectLead   Role = "project_lead"
)

// roleRules maps each role to the permissions that must all be present for
// the role to be granted.
var roleRules = map[Role][]string{
	RoleAdministrator: {"add_user", "change_user", "delete_user"},
	RoleDeveloper:     {"add_script", "change_script"},
	RoleQA:            {"add_execution_test", "change_execution_test"},
	RoleManager:       {"view_dashboard", "view_global_view"},
	RoleProjectLead:   {"add_project", "change_project"},
}

type RoleSet map[Role]struct{}

func (rs RoleSet) Has(role Role) bool {
	_, ok := rs[role]
	return ok
}

// List returns the roles in sorted order.
func (rs RoleSet) List() []Role {
	roles := make([]Role, 0, len(rs))
	for r := range rs {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Strings returns the roles as sorted plain strings, for JSON surfaces and
// logs.
func (rs RoleSet) Strings() []string {
	roles := rs.List()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// ResolveRoles derives the role set from a permission set. It is a pure
// function of its input: permissions that match no rule are ignored.
func ResolveRoles(permissions PermissionSet) RoleSet {
	roles := make(RoleSet)
	for role, required := range roleRules {
		if permissions.HasAll(required...) {
			roles[role] = struct{}{}
		}
	}
	return roles
}
