// Package policy compiles audit policies written in CUE into engine
// configuration: rule thresholds, the role table, the admin route table,
// and the permission inference rules. Sections omitted from a policy
// keep their built-in defaults.
package policy

import (
	"time"

	"github.com/auditkit/navaudit/internal/access"
	"github.com/auditkit/navaudit/internal/adminnav"
	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/feedback"
	"github.com/auditkit/navaudit/internal/rbac"
	"github.com/auditkit/navaudit/internal/report"
)

// Thresholds carries the numeric rule limits.
type Thresholds struct {
	MinTouchTargetSize    float64
	MinSpacing            float64
	ResponseTimeThreshold time.Duration
}

// Config is a compiled audit policy.
type Config struct {
	Thresholds     Thresholds
	Roles          []element.UserRole
	AdminRoutes    []element.AdminRoute
	InferenceRules []rbac.InferenceRule
}

// Default returns the built-in configuration: the same values the
// checkers use when no policy file is given.
func Default() *Config {
	return &Config{
		Thresholds: Thresholds{
			MinTouchTargetSize:    access.DefaultMinTouchTargetSize,
			MinSpacing:            access.DefaultMinSpacing,
			ResponseTimeThreshold: feedback.DefaultResponseTimeThreshold,
		},
		Roles:          rbac.DefaultRoles(),
		AdminRoutes:    adminnav.DefaultRoutes(),
		InferenceRules: rbac.DefaultInferenceRules(),
	}
}

// Apply pushes the compiled configuration into an auditor through the
// checkers' mutators. Empty tables are left at their defaults.
func (c *Config) Apply(a *report.Auditor) {
	a.AccessChecker().SetMinTouchTargetSize(c.Thresholds.MinTouchTargetSize)
	a.AccessChecker().SetMinSpacing(c.Thresholds.MinSpacing)
	a.FeedbackValidator().SetResponseTimeThreshold(c.Thresholds.ResponseTimeThreshold)

	if len(c.Roles) > 0 {
		a.RoleTester().SetSupportedRoles(c.Roles)
	}
	if len(c.InferenceRules) > 0 {
		a.RoleTester().SetInferenceRules(c.InferenceRules)
	}
	if len(c.AdminRoutes) > 0 {
		a.AdminValidator().SetAdminRoutes(c.AdminRoutes)
	}
}
