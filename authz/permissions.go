package authz

import "sort"

// PermissionSet holds the flat permission identifiers granted to a user, as
// delivered by the backend. Identifiers are treated verbatim; unknown strings
// are carried but never match a rule.
type PermissionSet map[string]struct{}

func NewPermissionSet(permissions ...string) PermissionSet {
	set := make(PermissionSet, len(permissions))
	for _, p := range permissions {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the exact permission identifier is present.
func (ps PermissionSet) Has(permission string) bool {
	_, ok := ps[permission]
	return ok
}

// HasAll reports whether every listed permission is present.
func (ps PermissionSet) HasAll(permissions ...string) bool {
	for _, p := range permissions {
		if !ps.Has(p) {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one listed permission is present.
func (ps PermissionSet) HasAny(permissions ...string) bool {
	for _, p := range permissions {
		if ps.Has(p) {
			return true
		}
	}
	return false
}

// List returns the permissions in sorted order.
func (ps PermissionSet) List() []string {
	permissions := make([]string, 0, len(ps))
	for p := range ps {
		permissions = append(permissions, p)
	}
	sort.Strings(permissions)
	return permissions
}
