// Package adminnav specializes access-control validation for
// administrative navigation: route-protection detection,
// permission-enforcement checks, and route-configuration linting.
package adminnav

import (
	"strings"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/rbac"
)

// adminPathPrefixes classify a destination as administrative.
var adminPathPrefixes = []string{
	"/admin",
	"/management",
	"/dashboard/admin",
	"/platform",
	"/settings/admin",
}

// adminKeywords classify an element as admin-relevant when found in its
// text, aria-label, or class attribute.
var adminKeywords = []string{"admin", "manage", "dashboard", "settings", "control", "configure"}

// DefaultRoutes returns the built-in admin route table.
func DefaultRoutes() []element.AdminRoute {
	return []element.AdminRoute{
		{Path: "/admin", RequiredPermissions: []string{rbac.PermManageSystem}, IsProtected: true},
		{Path: "/admin/users", RequiredPermissions: []string{rbac.PermManageUsers, rbac.PermManageSystem}, IsProtected: true},
		{Path: "/admin/settings", RequiredPermissions: []string{rbac.PermManageSystem}, IsProtected: true},
		{Path: "/management", RequiredPermissions: []string{rbac.PermManageUsers}, IsProtected: true},
		{Path: "/dashboard/admin", RequiredPermissions: []string{rbac.PermManageSystem}, IsProtected: true},
		{Path: "/platform", RequiredPermissions: []string{rbac.PermManageSystem}, IsProtected: true},
		{Path: "/settings/admin", RequiredPermissions: []string{rbac.PermManageSystem}, IsProtected: true},
	}
}

// SetAdminRoutes replaces the whole route table.
func (v *Validator) SetAdminRoutes(routes []element.AdminRoute) {
	v.routes = cloneRoutes(routes)
}

// AddAdminRoute adds a route, replacing any existing route with the same
// path in place (replace-by-path, not append).
func (v *Validator) AddAdminRoute(route element.AdminRoute) {
	for i, r := range v.routes {
		if r.Path == route.Path {
			v.routes[i] = route
			return
		}
	}
	v.routes = append(v.routes, route)
}

// AdminRoutes returns the current route table in declaration order.
func (v *Validator) AdminRoutes() []element.AdminRoute { return v.routes }

func cloneRoutes(routes []element.AdminRoute) []element.AdminRoute {
	out := make([]element.AdminRoute, len(routes))
	copy(out, routes)
	return out
}

// isAdminPath reports whether the destination matches a known admin path
// prefix.
func isAdminPath(path string) bool {
	for _, prefix := range adminPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// isAdminRelevant classifies an element as administrative: admin path
// prefix, or an admin keyword in its text, aria-label, or class.
func (v *Validator) isAdminRelevant(el element.NavigationElement) bool {
	if isAdminPath(v.destination(el)) {
		return true
	}
	if element.ContainsAnyKeyword(v.text(el), adminKeywords) {
		return true
	}
	if element.ContainsAnyKeyword(v.ariaLabel(el), adminKeywords) {
		return true
	}
	class, _ := v.attribute(el, "class")
	return element.ContainsAnyKeyword(class, adminKeywords)
}

// resolveRoute finds the explicit route entry whose path prefixes the
// element's destination, preferring the longest match; when none exists
// it synthesizes one from path heuristics.
func (v *Validator) resolveRoute(el element.NavigationElement) element.AdminRoute {
	dest := v.destination(el)

	var best *element.AdminRoute
	for i, r := range v.routes {
		if dest != "" && strings.HasPrefix(dest, r.Path) {
			if best == nil || len(r.Path) > len(best.Path) {
				best = &v.routes[i]
			}
		}
	}
	if best != nil {
		return *best
	}
	return synthesizeRoute(dest)
}

// synthesizeRoute builds a heuristic route for an unlisted path: path
// prefixes imply permissions through the shared inference rule table,
// and any admin-classified path defaults to protected.
func synthesizeRoute(path string) element.AdminRoute {
	route := element.AdminRoute{Path: path, RequiredPermissions: []string{}}
	if path == "" {
		return route
	}

	for _, rule := range rbac.DefaultInferenceRules() {
		if rule.Kind != rbac.MatchPathPrefix {
			continue
		}
		if strings.HasPrefix(path, rule.Pattern) {
			route.RequiredPermissions = appendUnique(route.RequiredPermissions, rule.Permission)
		}
	}
	route.IsProtected = isAdminPath(path)
	return route
}

func appendUnique(perms []string, p string) []string {
	for _, q := range perms {
		if q == p {
			return perms
		}
	}
	return append(perms, p)
}

// ValidateRouteConfiguration lints the static route table: paths must be
// non-empty and absolute, protected routes must declare permissions, and
// every /admin path must be flagged protected.
func ValidateRouteConfiguration(routes []element.AdminRoute) []string {
	issues := []string{}
	for _, r := range routes {
		if r.Path == "" {
			issues = append(issues, "Route has an empty path")
			continue
		}
		if !strings.HasPrefix(r.Path, "/") {
			issues = append(issues, "Route path must start with '/': "+r.Path)
		}
		if r.IsProtected && len(r.RequiredPermissions) == 0 {
			issues = append(issues, "Protected route declares no permissions: "+r.Path)
		}
		if strings.HasPrefix(r.Path, "/admin") && !r.IsProtected {
			issues = append(issues, "Admin path should be protected: "+r.Path)
		}
	}
	return issues
}
