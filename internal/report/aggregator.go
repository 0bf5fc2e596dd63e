// Package report composes the four checkers into one audit run: each
// component report is built over the same element set, merged under a
// single run token, and encoded canonically for comparison.
package report

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/auditkit/navaudit/internal/access"
	"github.com/auditkit/navaudit/internal/adminnav"
	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/feedback"
	"github.com/auditkit/navaudit/internal/inspect"
	"github.com/auditkit/navaudit/internal/rbac"
)

// TokenGenerator produces run tokens for audit reports.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens. UUIDv7
// embeds a timestamp in the most significant bits, so tokens sort by
// run time in logs and stored output.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Auditor runs the four checkers over one element set and merges their
// reports.
//
// Thread-safety: Run may be called concurrently; the per-run report is
// built from local state, and the underlying checkers guard their
// result caches internally.
type Auditor struct {
	access   *access.Checker
	roles    *rbac.Tester
	adminNav *adminnav.Validator
	feedback *feedback.Validator
	tokens   TokenGenerator

	mu sync.Mutex
}

// Option configures an Auditor.
type Option func(*Auditor)

// WithTokenGenerator replaces the UUIDv7 run-token generator.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(a *Auditor) { a.tokens = g }
}

// WithAccessChecker replaces the default accessibility checker.
func WithAccessChecker(c *access.Checker) Option {
	return func(a *Auditor) { a.access = c }
}

// WithRoleTester replaces the default role-based tester.
func WithRoleTester(t *rbac.Tester) Option {
	return func(a *Auditor) { a.roles = t }
}

// WithAdminValidator replaces the default admin navigation validator.
func WithAdminValidator(v *adminnav.Validator) Option {
	return func(a *Auditor) { a.adminNav = v }
}

// WithFeedbackValidator replaces the default visual feedback validator.
func WithFeedbackValidator(v *feedback.Validator) Option {
	return func(a *Auditor) { a.feedback = v }
}

// NewAuditor creates an Auditor with default checkers bound to the given
// inspection adapter.
func NewAuditor(ins inspect.Inspector, opts ...Option) *Auditor {
	a := &Auditor{
		access:   access.NewChecker(ins),
		roles:    rbac.NewTester(ins),
		adminNav: adminnav.NewValidator(ins),
		feedback: feedback.NewValidator(ins),
		tokens:   UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AccessChecker exposes the underlying accessibility checker for
// configuration mutators.
func (a *Auditor) AccessChecker() *access.Checker { return a.access }

// RoleTester exposes the underlying role-based tester.
func (a *Auditor) RoleTester() *rbac.Tester { return a.roles }

// AdminValidator exposes the underlying admin navigation validator.
func (a *Auditor) AdminValidator() *adminnav.Validator { return a.adminNav }

// FeedbackValidator exposes the underlying visual feedback validator.
func (a *Auditor) FeedbackValidator() *feedback.Validator { return a.feedback }

// Run executes all four checkers over the element set and merges their
// reports into one AuditReport stamped with a fresh run token. Failing
// element counts are unioned: an element failing several checkers counts
// once.
func (a *Auditor) Run(elements []element.NavigationElement) element.AuditReport {
	a.mu.Lock()
	token := a.tokens.Generate()
	a.mu.Unlock()

	accessibility := a.access.Report(elements)
	roleBased := a.roles.Report(elements)
	adminNav := a.adminNav.Report(elements)
	visual := a.feedback.Report(elements)

	failed := make(map[string]bool)
	counts := map[string]int{}

	for _, tt := range accessibility.TouchTargets {
		if !tt.MeetsMinimumSize || !tt.HasAdequateSpacing {
			failed[tt.Element.ID] = true
		}
	}
	for _, r := range accessibility.AriaResults {
		if len(r.Violations) > 0 {
			failed[r.Element.ID] = true
		}
		for _, v := range r.Violations {
			counts[v]++
		}
	}

	for _, name := range roleBased.RoleOrder {
		for _, r := range roleBased.Results[name] {
			if !r.Passed {
				failed[r.Element.ID] = true
			}
		}
	}
	for _, v := range roleBased.Summary.Violations {
		counts[v]++
	}

	for _, r := range adminNav.Results {
		if len(r.Issues) > 0 {
			failed[r.Element.ID] = true
		}
		for _, issue := range r.Issues {
			counts[issue]++
		}
	}
	for _, issue := range adminNav.ConfigIssues {
		counts[issue]++
	}

	// Hover and focus arrays are index-aligned with the input; loading
	// absence is not treated as a failure.
	for i := range visual.Hover {
		if !visual.Hover[i].HasVisualFeedback {
			failed[visual.Hover[i].Element.ID] = true
			counts["No hover feedback detected"]++
		}
	}
	for i := range visual.Focus {
		if !visual.Focus[i].HasVisualFeedback {
			failed[visual.Focus[i].Element.ID] = true
			counts["No focus feedback detected"]++
		}
	}

	report := element.AuditReport{
		RunToken:       token,
		Accessibility:  accessibility,
		RoleBased:      roleBased,
		AdminNav:       adminNav,
		VisualFeedback: visual,
		Summary: element.AuditSummary{
			TotalElements:  len(elements),
			FailedElements: len(failed),
			PassedElements: len(elements) - len(failed),
			TopIssues:      element.TopIssues(counts, 10),
		},
	}

	slog.Info("audit run complete",
		"run_token", token,
		"total", report.Summary.TotalElements,
		"passed", report.Summary.PassedElements,
		"failed", report.Summary.FailedElements,
	)

	return report
}
