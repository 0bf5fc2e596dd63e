// Package rbac implements the role-based access tester: it infers which
// permissions an element requires, then checks whether the element's
// actual rendered visibility matches the expected visibility for each
// supported role.
//
// Permission semantics are deliberately asymmetric: inference UNIONS
// permissions from every matching heuristic, while the permission check
// ANDs over the required set (wildcard aside). The union is conservative
// about what an element might gate; the AND is strict about who may see
// it.
package rbac

import (
	"github.com/auditkit/navaudit/internal/element"
)

// Well-known permissions used by the default role table and inference
// rules.
const (
	PermViewPublic    = "view_public"
	PermViewProfile   = "view_profile"
	PermCreateBooking = "create_booking"
	PermManageUsers   = "manage_users"
	PermManageSystem  = "manage_system"
)

// DefaultRoles returns the built-in role table in declaration order.
// Order matters: per-role results and violation messages follow it.
func DefaultRoles() []element.UserRole {
	return []element.UserRole{
		{Name: "guest", Permissions: []string{PermViewPublic}},
		{Name: "user", Permissions: []string{PermViewPublic, PermViewProfile, PermCreateBooking}},
		{Name: "admin", Permissions: []string{
			PermViewPublic, PermViewProfile, PermCreateBooking,
			PermManageUsers, PermManageSystem,
		}},
		{Name: "super_admin", Permissions: []string{element.WildcardPermission}},
	}
}

// HasRequiredPermissions reports whether role satisfies every required
// permission. The wildcard permission short-circuits to true for any
// required set. An empty required set is satisfied by every role.
func HasRequiredPermissions(role element.UserRole, required []string) bool {
	held := make(map[string]bool, len(role.Permissions))
	for _, p := range role.Permissions {
		if p == element.WildcardPermission {
			return true
		}
		held[p] = true
	}
	for _, p := range required {
		if !held[p] {
			return false
		}
	}
	return true
}

// permissionsForRole resolves a role name against the table. Unknown
// names yield an empty set, never an error.
func permissionsForRole(roles []element.UserRole, name string) []string {
	for _, r := range roles {
		if r.Name == name {
			return r.Permissions
		}
	}
	return nil
}
