package rbac

import (
	"strings"

	"github.com/auditkit/navaudit/internal/element"
)

// MatchKind tags how an inference rule matches an element.
type MatchKind string

const (
	// MatchPathPrefix matches the element's destination path by prefix.
	MatchPathPrefix MatchKind = "path-prefix"

	// MatchClassKeyword matches a keyword inside the class attribute.
	MatchClassKeyword MatchKind = "class-keyword"

	// MatchAriaKeyword matches a keyword inside the aria-label.
	MatchAriaKeyword MatchKind = "aria-keyword"
)

// InferenceRule binds one heuristic pattern to the permission it implies.
// The table replaces the scattered string-matching conditionals the
// heuristics grew out of; every rule is evaluated once per element and
// any match ADDS its permission (union semantics).
type InferenceRule struct {
	Kind       MatchKind `json:"kind" yaml:"kind"`
	Pattern    string    `json:"pattern" yaml:"pattern"`
	Permission string    `json:"permission" yaml:"permission"`
}

// DefaultInferenceRules returns the built-in rule table in declaration
// order. Order is preserved so inferred permission lists are
// deterministic.
func DefaultInferenceRules() []InferenceRule {
	return []InferenceRule{
		{MatchPathPrefix, "/admin", PermManageSystem},
		{MatchPathPrefix, "/profile", PermViewProfile},
		{MatchPathPrefix, "/account", PermViewProfile},
		{MatchPathPrefix, "/booking", PermCreateBooking},
		{MatchPathPrefix, "/reserve", PermCreateBooking},
		{MatchPathPrefix, "/users", PermManageUsers},
		{MatchPathPrefix, "/members", PermManageUsers},
		{MatchPathPrefix, "/companies", PermManageUsers},
		{MatchPathPrefix, "/organizations", PermManageUsers},
		{MatchClassKeyword, "admin", PermManageSystem},
		{MatchClassKeyword, "user", PermViewProfile},
		{MatchAriaKeyword, "admin", PermManageSystem},
	}
}

// RequiredPermissions infers the permission set an element requires as
// the union of: an explicit data-permissions list, permissions mapped
// from a data-role attribute through the role table, and every matching
// inference rule. An empty result means the element is public.
//
// Result order is deterministic: explicit attributes first, then rule
// declaration order, duplicates dropped.
func (t *Tester) RequiredPermissions(el element.NavigationElement) []string {
	var required []string
	seen := map[string]bool{}
	add := func(perm string) {
		if perm != "" && !seen[perm] {
			seen[perm] = true
			required = append(required, perm)
		}
	}

	if v, ok := t.attribute(el, "data-permissions"); ok {
		for _, p := range splitList(v) {
			add(p)
		}
	}
	if v, ok := t.attribute(el, "data-role"); ok {
		for _, p := range permissionsForRole(t.roles, strings.TrimSpace(v)) {
			if p != element.WildcardPermission {
				add(p)
			}
		}
	}

	dest := t.destination(el)
	class, _ := t.attribute(el, "class")
	aria := t.ariaLabel(el)

	for _, rule := range t.rules {
		switch rule.Kind {
		case MatchPathPrefix:
			if dest != "" && strings.HasPrefix(dest, rule.Pattern) {
				add(rule.Permission)
			}
		case MatchClassKeyword:
			if element.ContainsAnyKeyword(class, []string{rule.Pattern}) {
				add(rule.Permission)
			}
		case MatchAriaKeyword:
			if element.ContainsAnyKeyword(aria, []string{rule.Pattern}) {
				add(rule.Permission)
			}
		}
	}

	return required
}

func (t *Tester) attribute(el element.NavigationElement, name string) (string, bool) {
	if el.Node == nil {
		return "", false
	}
	return t.ins.Attribute(el.Node, name)
}

// destination prefers the normalized record, falling back to the live
// href attribute.
func (t *Tester) destination(el element.NavigationElement) string {
	if el.Destination != "" {
		return el.Destination
	}
	if v, ok := t.attribute(el, "href"); ok {
		return v
	}
	return ""
}

func (t *Tester) ariaLabel(el element.NavigationElement) string {
	if el.AriaLabel != "" {
		return el.AriaLabel
	}
	if v, ok := t.attribute(el, "aria-label"); ok {
		return v
	}
	return ""
}

// splitList splits a comma- or whitespace-separated attribute value.
func splitList(v string) []string {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
