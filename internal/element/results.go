package element

import "time"

// TouchTarget is the sizing/spacing verdict for one element.
type TouchTarget struct {
	Element            NavigationElement `json:"element"`
	Size               Rect              `json:"size"`
	MeetsMinimumSize   bool              `json:"meets_minimum_size"`
	HasAdequateSpacing bool              `json:"has_adequate_spacing"`
}

// AccessibilityResult collects ARIA/keyboard/focus findings for one element.
type AccessibilityResult struct {
	Element         NavigationElement `json:"element"`
	Violations      []string          `json:"violations"`
	Recommendations []string          `json:"recommendations"`
}

// RoleTestResult is the visibility verdict for one (role, element) pair.
// Passed is true iff expected and actual visibility agree.
type RoleTestResult struct {
	Role            UserRole          `json:"role"`
	Element         NavigationElement `json:"element"`
	ShouldBeVisible bool              `json:"should_be_visible"`
	IsVisible       bool              `json:"is_visible"`
	Passed          bool              `json:"passed"`
}

// AccessViolation describes one role mismatch attached to an element.
type AccessViolation struct {
	Role        string `json:"role"`
	Description string `json:"description"`
}

// ElementAccessViolations is the per-element dual view of role testing:
// one element with its per-role mismatch descriptions.
type ElementAccessViolations struct {
	Element    NavigationElement `json:"element"`
	Violations []AccessViolation `json:"violations"`
}

// AdminNavigationResult is the verdict for one admin-relevant element
// against its resolved route.
type AdminNavigationResult struct {
	Route               AdminRoute        `json:"route"`
	Element             NavigationElement `json:"element"`
	IsAccessible        bool              `json:"is_accessible"`
	HasProperProtection bool              `json:"has_proper_protection"`
	Issues              []string          `json:"issues"`
}

// FeedbackState names an interaction state and the CSS properties that
// changed (or were observed) for it.
type FeedbackState struct {
	Name          string            `json:"name"` // "hover", "focus", "loading"
	CSSProperties map[string]string `json:"css_properties"`
}

// VisualFeedbackResult is the feedback verdict for one element and state.
// ResponseTime is the wall-clock duration of the detection routine itself,
// a cost proxy rather than a true interaction latency.
type VisualFeedbackResult struct {
	Element           NavigationElement `json:"element"`
	State             FeedbackState     `json:"state"`
	HasVisualFeedback bool              `json:"has_visual_feedback"`
	ResponseTime      time.Duration     `json:"response_time"`
}
