// Package access implements the accessibility checker: touch-target
// sizing and spacing, ARIA label/role/state validation, keyboard and
// focus-indicator checks, and a coarse contrast heuristic.
//
// ERROR HANDLING: Every batch method is fail-soft. A failure while
// inspecting one element degrades that element's result (or omits it,
// for elements with no usable geometry) and the batch continues. This
// "log and continue" behavior keeps audit output deterministic; a single
// broken node never aborts a report.
package access

import (
	"log/slog"
	"sync"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

const (
	// DefaultMinTouchTargetSize is the minimum touch-target edge in CSS
	// pixels. Both width and height must meet it.
	DefaultMinTouchTargetSize = 44.0

	// DefaultMinSpacing is the minimum gap to a neighboring interactive
	// element, in CSS pixels.
	DefaultMinSpacing = 8.0
)

// Checker evaluates elements against accessibility rules through the
// inspection port. Stateless apart from an explicit result cache cleared
// by ClearResults.
type Checker struct {
	ins inspect.Inspector

	minTouchTargetSize float64
	minSpacing         float64

	mu      sync.Mutex
	results map[string][]element.AccessibilityResult // element ID -> cached results
}

// Option configures a Checker.
type Option func(*Checker)

// WithMinTouchTargetSize overrides the minimum touch-target edge.
func WithMinTouchTargetSize(px float64) Option {
	return func(c *Checker) { c.minTouchTargetSize = px }
}

// WithMinSpacing overrides the minimum neighbor spacing.
func WithMinSpacing(px float64) Option {
	return func(c *Checker) { c.minSpacing = px }
}

// NewChecker creates a Checker bound to an inspection adapter.
func NewChecker(ins inspect.Inspector, opts ...Option) *Checker {
	c := &Checker{
		ins:                ins,
		minTouchTargetSize: DefaultMinTouchTargetSize,
		minSpacing:         DefaultMinSpacing,
		results:            make(map[string][]element.AccessibilityResult),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetMinTouchTargetSize updates the minimum touch-target edge.
func (c *Checker) SetMinTouchTargetSize(px float64) { c.minTouchTargetSize = px }

// SetMinSpacing updates the minimum neighbor spacing.
func (c *Checker) SetMinSpacing(px float64) { c.minSpacing = px }

// MinTouchTargetSize returns the configured minimum edge.
func (c *Checker) MinTouchTargetSize() float64 { return c.minTouchTargetSize }

// MinSpacing returns the configured minimum spacing.
func (c *Checker) MinSpacing() float64 { return c.minSpacing }

// ClearResults empties the result cache.
func (c *Checker) ClearResults() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string][]element.AccessibilityResult)
}

func (c *Checker) cacheResult(r element.AccessibilityResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[r.Element.ID] = append(c.results[r.Element.ID], r)
}

// CachedResults returns the cached results for an element ID.
// Used for diagnostics and tests.
func (c *Checker) CachedResults(id string) []element.AccessibilityResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results[id]
}

// Report runs both checks over the element set and unions their failing
// element sets: an element failing multiple checks counts once.
func (c *Checker) Report(elements []element.NavigationElement) element.AccessibilityReport {
	targets := c.CheckTouchTargets(elements)
	aria := c.ValidateARIALabels(elements)

	failed := make(map[string]bool)
	touchFailures := 0
	for _, tt := range targets {
		if !tt.MeetsMinimumSize || !tt.HasAdequateSpacing {
			failed[tt.Element.ID] = true
			touchFailures++
		}
	}
	ariaViolations := 0
	for _, r := range aria {
		ariaViolations += len(r.Violations)
		if len(r.Violations) > 0 {
			failed[r.Element.ID] = true
		}
	}

	report := element.AccessibilityReport{
		TouchTargets: targets,
		AriaResults:  aria,
		Summary: element.AccessibilitySummary{
			TotalElements:   len(elements),
			FailedElements:  len(failed),
			PassedElements:  len(elements) - len(failed),
			TouchTargetFail: touchFailures,
			AriaViolations:  ariaViolations,
		},
	}

	slog.Info("accessibility report built",
		"total", report.Summary.TotalElements,
		"passed", report.Summary.PassedElements,
		"failed", report.Summary.FailedElements,
		"aria_violations", ariaViolations,
	)

	return report
}
