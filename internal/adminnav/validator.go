package adminnav

import (
	"log/slog"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

// Validator audits admin-relevant navigation elements against their
// routes. Stateless apart from the configured route table.
type Validator struct {
	ins    inspect.Inspector
	routes []element.AdminRoute
}

// Option configures a Validator.
type Option func(*Validator)

// WithRoutes replaces the default route table.
func WithRoutes(routes []element.AdminRoute) Option {
	return func(v *Validator) { v.routes = cloneRoutes(routes) }
}

// NewValidator creates a Validator with the default admin route table.
func NewValidator(ins inspect.Inspector, opts ...Option) *Validator {
	v := &Validator{
		ins:    ins,
		routes: DefaultRoutes(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the per-element checks over every admin-relevant element
// in the input. Non-admin elements are skipped; output order follows
// input order. A per-element inspection failure degrades that element's
// result rather than aborting the batch.
func (v *Validator) Validate(elements []element.NavigationElement) []element.AdminNavigationResult {
	results := make([]element.AdminNavigationResult, 0, len(elements))

	for _, el := range elements {
		if !v.isAdminRelevant(el) {
			continue
		}

		route := v.resolveRoute(el)
		result := element.AdminNavigationResult{
			Route:   route,
			Element: el,
			Issues:  []string{},
		}

		if el.Node == nil {
			result.Issues = append(result.Issues, "Element could not be analyzed")
			results = append(results, result)
			continue
		}

		result.IsAccessible = v.checkDOMAccessibility(el, &result)
		result.HasProperProtection = v.checkProtectionIndicators(el, route, &result)
		v.checkAdminRequirements(el, route, &result)
		v.checkPermissionEnforcement(el, route, &result)

		results = append(results, result)
	}

	return results
}

// Report aggregates element results with the static route lint, ranking
// the five most frequent issues.
func (v *Validator) Report(elements []element.NavigationElement) element.AdminNavigationReport {
	results := v.Validate(elements)
	configIssues := ValidateRouteConfiguration(v.routes)

	counts := map[string]int{}
	accessible, protected := 0, 0
	for _, r := range results {
		if r.IsAccessible {
			accessible++
		}
		if r.HasProperProtection {
			protected++
		}
		for _, issue := range r.Issues {
			counts[issue]++
		}
	}
	for _, issue := range configIssues {
		counts[issue]++
	}

	report := element.AdminNavigationReport{
		Results:      results,
		ConfigIssues: configIssues,
		Summary: element.AdminNavigationSummary{
			TotalElements:    len(results),
			AccessibleCount:  accessible,
			ProtectedCount:   protected,
			ConfigIssueCount: len(configIssues),
			TopIssues:        element.TopIssues(counts, 5),
		},
	}

	slog.Info("admin navigation report built",
		"admin_elements", len(results),
		"accessible", accessible,
		"protected", protected,
		"config_issues", len(configIssues),
	)

	return report
}

func (v *Validator) attribute(el element.NavigationElement, name string) (string, bool) {
	if el.Node == nil {
		return "", false
	}
	return v.ins.Attribute(el.Node, name)
}

func (v *Validator) destination(el element.NavigationElement) string {
	if el.Destination != "" {
		return el.Destination
	}
	if v, ok := v.attribute(el, "href"); ok {
		return v
	}
	return ""
}

func (v *Validator) text(el element.NavigationElement) string {
	if el.Node == nil {
		return ""
	}
	return v.ins.TextContent(el.Node)
}

func (v *Validator) ariaLabel(el element.NavigationElement) string {
	if el.AriaLabel != "" {
		return el.AriaLabel
	}
	if v, ok := v.attribute(el, "aria-label"); ok {
		return v
	}
	return ""
}
