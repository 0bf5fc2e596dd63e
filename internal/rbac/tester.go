package rbac

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

// Tester checks expected-versus-actual element visibility per role.
//
// The role slice order is preserved from configuration: per-role result
// maps carry an explicit order so reports are reproducible.
type Tester struct {
	ins   inspect.Inspector
	roles []element.UserRole
	rules []InferenceRule

	mu      sync.Mutex
	results map[string][]element.RoleTestResult // element ID -> cached results
}

// Option configures a Tester.
type Option func(*Tester)

// WithRoles replaces the default role table.
func WithRoles(roles []element.UserRole) Option {
	return func(t *Tester) { t.roles = cloneRoles(roles) }
}

// WithInferenceRules replaces the default inference rule table.
func WithInferenceRules(rules []InferenceRule) Option {
	return func(t *Tester) { t.rules = append([]InferenceRule(nil), rules...) }
}

// NewTester creates a Tester with the default role and rule tables.
func NewTester(ins inspect.Inspector, opts ...Option) *Tester {
	t := &Tester{
		ins:     ins,
		roles:   DefaultRoles(),
		rules:   DefaultInferenceRules(),
		results: make(map[string][]element.RoleTestResult),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// cloneRoles copies the slice to prevent external mutation of the table.
func cloneRoles(roles []element.UserRole) []element.UserRole {
	out := make([]element.UserRole, len(roles))
	copy(out, roles)
	return out
}

// SupportedRoles returns the current role table in declaration order.
func (t *Tester) SupportedRoles() []element.UserRole { return t.roles }

// SetSupportedRoles replaces the whole role table.
func (t *Tester) SetSupportedRoles(roles []element.UserRole) {
	t.roles = cloneRoles(roles)
}

// AddRole adds a role, replacing any existing role of the same name
// in place (replace-by-name, not append).
func (t *Tester) AddRole(role element.UserRole) {
	for i, r := range t.roles {
		if r.Name == role.Name {
			t.roles[i] = role
			return
		}
	}
	t.roles = append(t.roles, role)
}

// SetInferenceRules replaces the whole inference rule table.
func (t *Tester) SetInferenceRules(rules []InferenceRule) {
	t.rules = append([]InferenceRule(nil), rules...)
}

// InferenceRules returns the current rule table in declaration order.
func (t *Tester) InferenceRules() []InferenceRule { return t.rules }

// ClearResults empties the result cache.
func (t *Tester) ClearResults() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = make(map[string][]element.RoleTestResult)
}

func (t *Tester) cacheResult(r element.RoleTestResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results[r.Element.ID] = append(t.results[r.Element.ID], r)
}

// CachedResults returns the cached results for an element ID.
func (t *Tester) CachedResults(id string) []element.RoleTestResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.results[id]
}

// IsElementVisible computes actual rendered visibility from computed
// style, geometry, and disabled state. A style-read failure degrades to
// the record's extraction-time visibility flag.
func (t *Tester) IsElementVisible(el element.NavigationElement) bool {
	if el.Node == nil {
		return el.IsVisible
	}

	styles, err := t.ins.ComputedStyle(el.Node, "display", "visibility", "opacity")
	if err != nil {
		slog.Debug("visibility style read failed", "element", el.ID, "error", err)
		return el.IsVisible
	}
	if styles.Get("display") == "none" || styles.Get("visibility") == "hidden" {
		return false
	}
	if op := styles.Get("opacity"); op == "0" || op == "0.0" {
		return false
	}

	rect, err := t.ins.BoundingRect(el.Node)
	if err == nil && rect.IsZero() {
		return false
	}

	if _, disabled := t.ins.Attribute(el.Node, "disabled"); disabled {
		return false
	}
	if v, ok := t.ins.Attribute(el.Node, "aria-disabled"); ok && v == "true" {
		return false
	}

	return true
}

// TestElementForRole evaluates one (role, element) pair. The test passes
// iff expected visibility equals actual visibility.
func (t *Tester) TestElementForRole(el element.NavigationElement, role element.UserRole) element.RoleTestResult {
	required := t.RequiredPermissions(el)

	// Elements with no inferred requirements are public: visible to all.
	shouldBeVisible := len(required) == 0 || HasRequiredPermissions(role, required)
	isVisible := t.IsElementVisible(el)

	result := element.RoleTestResult{
		Role:            role,
		Element:         el,
		ShouldBeVisible: shouldBeVisible,
		IsVisible:       isVisible,
		Passed:          shouldBeVisible == isVisible,
	}
	t.cacheResult(result)
	return result
}

// TestMultipleRoles runs every element against every supported role.
// The returned map is keyed by role name; iterate with RoleOrder from
// the report (or SupportedRoles) for deterministic traversal.
func (t *Tester) TestMultipleRoles(elements []element.NavigationElement) map[string][]element.RoleTestResult {
	results := make(map[string][]element.RoleTestResult, len(t.roles))
	for _, role := range t.roles {
		perRole := make([]element.RoleTestResult, 0, len(elements))
		for _, el := range elements {
			perRole = append(perRole, t.TestElementForRole(el, role))
		}
		results[role.Name] = perRole
	}
	return results
}

// FindAccessControlViolations is the per-element dual view: each element
// is tested against every supported role and the mismatch descriptions
// are attached to that single element.
func (t *Tester) FindAccessControlViolations(elements []element.NavigationElement) []element.ElementAccessViolations {
	out := make([]element.ElementAccessViolations, 0, len(elements))
	for _, el := range elements {
		ev := element.ElementAccessViolations{
			Element:    el,
			Violations: []element.AccessViolation{},
		}
		for _, role := range t.roles {
			r := t.TestElementForRole(el, role)
			if r.Passed {
				continue
			}
			ev.Violations = append(ev.Violations, element.AccessViolation{
				Role:        role.Name,
				Description: describeMismatch(el, r),
			})
		}
		out = append(out, ev)
	}
	return out
}

// Report runs the full role matrix and summarizes it, deduplicating
// violation messages across roles.
func (t *Tester) Report(elements []element.NavigationElement) element.RoleBasedReport {
	results := t.TestMultipleRoles(elements)

	order := make([]string, 0, len(t.roles))
	for _, r := range t.roles {
		order = append(order, r.Name)
	}

	summary := element.RoleBasedSummary{Violations: []string{}}
	seen := map[string]bool{}
	for _, name := range order {
		for _, r := range results[name] {
			summary.TotalTests++
			if r.Passed {
				summary.PassedTests++
				continue
			}
			summary.FailedTests++
			msg := fmt.Sprintf("[%s] %s", name, describeMismatch(r.Element, r))
			if !seen[msg] {
				seen[msg] = true
				summary.Violations = append(summary.Violations, msg)
			}
		}
	}

	slog.Info("role-based report built",
		"roles", len(order),
		"elements", len(elements),
		"failed_tests", summary.FailedTests,
	)

	return element.RoleBasedReport{
		RoleOrder: order,
		Results:   results,
		Summary:   summary,
	}
}

// describeMismatch distinguishes the two failure directions.
func describeMismatch(el element.NavigationElement, r element.RoleTestResult) string {
	label := el.ID
	if label == "" {
		label = el.Selector
	}
	if r.ShouldBeVisible && !r.IsVisible {
		return fmt.Sprintf("element %q should be visible but is hidden", label)
	}
	return fmt.Sprintf("element %q should be hidden but is visible", label)
}

// RoleNames returns the configured role names in declaration order.
func (t *Tester) RoleNames() []string {
	names := make([]string, 0, len(t.roles))
	for _, r := range t.roles {
		names = append(names, r.Name)
	}
	return names
}
