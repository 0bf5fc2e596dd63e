// Package feedback implements the visual feedback validator: it decides
// whether hover, focus, and loading interactions produce observable
// visual change, combining passive style evidence with active off-screen
// clone simulation through the inspection port.
package feedback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

// DefaultResponseTimeThreshold bounds how long one detection routine is
// expected to take. Detections above it are logged, not failed: the
// measurement is a cost proxy, not an interaction latency.
const DefaultResponseTimeThreshold = 300 * time.Millisecond

// StateHover, StateFocus and StateLoading name the three validated
// interaction states.
const (
	StateHover   = "hover"
	StateFocus   = "focus"
	StateLoading = "loading"
)

// Validator evaluates interaction-state feedback through the inspection
// port. Stateless apart from an explicit result cache cleared by
// ClearResults.
type Validator struct {
	ins   inspect.Inspector
	watch inspect.Stopwatch

	responseTimeThreshold time.Duration

	mu      sync.Mutex
	results map[string][]element.VisualFeedbackResult // element ID -> cached results
}

// Option configures a Validator.
type Option func(*Validator)

// WithResponseTimeThreshold overrides the detection-time threshold.
func WithResponseTimeThreshold(d time.Duration) Option {
	return func(v *Validator) { v.responseTimeThreshold = d }
}

// WithStopwatch replaces the wall-clock stopwatch, fixing measured
// durations in tests.
func WithStopwatch(w inspect.Stopwatch) Option {
	return func(v *Validator) { v.watch = w }
}

// NewValidator creates a Validator bound to an inspection adapter.
func NewValidator(ins inspect.Inspector, opts ...Option) *Validator {
	v := &Validator{
		ins:                   ins,
		watch:                 inspect.WallClock{},
		responseTimeThreshold: DefaultResponseTimeThreshold,
		results:               make(map[string][]element.VisualFeedbackResult),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// SetResponseTimeThreshold updates the detection-time threshold.
func (v *Validator) SetResponseTimeThreshold(d time.Duration) { v.responseTimeThreshold = d }

// ResponseTimeThreshold returns the configured threshold.
func (v *Validator) ResponseTimeThreshold() time.Duration { return v.responseTimeThreshold }

// ClearResults empties the result cache.
func (v *Validator) ClearResults() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.results = make(map[string][]element.VisualFeedbackResult)
}

func (v *Validator) cacheResult(r element.VisualFeedbackResult) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.results[r.Element.ID] = append(v.results[r.Element.ID], r)
}

// CachedResults returns the cached results for an element ID.
func (v *Validator) CachedResults(id string) []element.VisualFeedbackResult {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.results[id]
}

// ValidateHover checks hover feedback for every element. Output order
// follows input order, one result per element; a per-element inspection
// failure degrades that element's result rather than aborting the batch.
func (v *Validator) ValidateHover(elements []element.NavigationElement) []element.VisualFeedbackResult {
	results := make([]element.VisualFeedbackResult, 0, len(elements))
	for _, el := range elements {
		results = append(results, v.validateSimulated(el, StateHover, inspect.TriggerHover))
	}
	return results
}

// ValidateFocus checks focus feedback for every element, same contract
// as ValidateHover.
func (v *Validator) ValidateFocus(elements []element.NavigationElement) []element.VisualFeedbackResult {
	results := make([]element.VisualFeedbackResult, 0, len(elements))
	for _, el := range elements {
		results = append(results, v.validateSimulated(el, StateFocus, inspect.TriggerFocus))
	}
	return results
}

// validateSimulated runs the shared hover/focus routine: passive style
// evidence first, then the off-screen clone simulation. Passive evidence
// short-circuits the simulation; when the simulation runs, its changed
// properties are merged into the result's CSS property map. A simulation
// failure is conservative: no feedback from the active path.
func (v *Validator) validateSimulated(el element.NavigationElement, state string, trigger inspect.Trigger) element.VisualFeedbackResult {
	stop := v.watch.Start()

	result := element.VisualFeedbackResult{
		Element: el,
		State:   element.FeedbackState{Name: state, CSSProperties: map[string]string{}},
	}

	if el.Node == nil {
		slog.Warn("element has no node reference, assuming no feedback",
			"element", el.ID, "state", state)
		result.ResponseTime = stop()
		v.cacheResult(result)
		return result
	}

	evidence := v.passiveEvidence(el)
	for prop, val := range evidence {
		result.State.CSSProperties[prop] = val
	}

	if len(evidence) > 0 {
		result.HasVisualFeedback = true
	} else {
		sim, err := v.ins.Simulate(el.Node, trigger, inspect.SimulationProps)
		if err != nil {
			slog.Debug("state simulation failed",
				"element", el.ID, "state", state, "error", err)
		} else {
			for prop, val := range sim.Changed() {
				result.State.CSSProperties[prop] = val
				result.HasVisualFeedback = true
			}
		}
	}

	result.ResponseTime = v.finish(el, state, stop)
	v.cacheResult(result)
	return result
}

// ValidateLoading checks loading-state feedback for every element. There
// is no native loading pseudo-state to simulate, so detection is
// evidence-only. Same batch contract as ValidateHover.
func (v *Validator) ValidateLoading(elements []element.NavigationElement) []element.VisualFeedbackResult {
	results := make([]element.VisualFeedbackResult, 0, len(elements))
	for _, el := range elements {
		results = append(results, v.validateLoading(el))
	}
	return results
}

func (v *Validator) validateLoading(el element.NavigationElement) element.VisualFeedbackResult {
	stop := v.watch.Start()

	result := element.VisualFeedbackResult{
		Element: el,
		State:   element.FeedbackState{Name: StateLoading, CSSProperties: map[string]string{}},
	}

	if el.Node == nil {
		slog.Warn("element has no node reference, assuming no feedback",
			"element", el.ID, "state", StateLoading)
		result.ResponseTime = stop()
		v.cacheResult(result)
		return result
	}

	result.HasVisualFeedback = v.loadingEvidence(el, result.State.CSSProperties)
	result.ResponseTime = v.finish(el, StateLoading, stop)
	v.cacheResult(result)
	return result
}

func (v *Validator) finish(el element.NavigationElement, state string, stop func() time.Duration) time.Duration {
	elapsed := stop()
	if elapsed > v.responseTimeThreshold {
		slog.Warn("feedback detection exceeded threshold",
			"element", el.ID,
			"state", state,
			"elapsed", elapsed,
			"threshold", v.responseTimeThreshold,
		)
	}
	return elapsed
}

// Report runs all three checks over the element set and summarizes
// per-state feedback counts plus the mean response time across every
// result produced.
func (v *Validator) Report(elements []element.NavigationElement) element.VisualFeedbackReport {
	hover := v.ValidateHover(elements)
	focus := v.ValidateFocus(elements)
	loading := v.ValidateLoading(elements)

	count := func(results []element.VisualFeedbackResult) int {
		n := 0
		for _, r := range results {
			if r.HasVisualFeedback {
				n++
			}
		}
		return n
	}

	var total time.Duration
	samples := 0
	for _, batch := range [][]element.VisualFeedbackResult{hover, focus, loading} {
		for _, r := range batch {
			total += r.ResponseTime
			samples++
		}
	}
	var mean time.Duration
	if samples > 0 {
		mean = total / time.Duration(samples)
	}

	report := element.VisualFeedbackReport{
		Hover:   hover,
		Focus:   focus,
		Loading: loading,
		Summary: element.VisualFeedbackSummary{
			TotalElements:    len(elements),
			HoverFeedback:    count(hover),
			FocusFeedback:    count(focus),
			LoadingFeedback:  count(loading),
			MeanResponseTime: mean,
		},
	}

	slog.Info("visual feedback report built",
		"total", report.Summary.TotalElements,
		"hover", report.Summary.HoverFeedback,
		"focus", report.Summary.FocusFeedback,
		"loading", report.Summary.LoadingFeedback,
		"mean_response_time", mean,
	)

	return report
}
