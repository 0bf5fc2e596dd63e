package element

import (
	"sort"
	"time"
)

// IssueCount pairs an issue message with its occurrence count.
type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// TopIssues ranks issue occurrences by count descending, ties broken by
// message ascending, truncated to limit. Deterministic for reproducible
// reports.
func TopIssues(counts map[string]int, limit int) []IssueCount {
	ranked := make([]IssueCount, 0, len(counts))
	for issue, n := range counts {
		ranked = append(ranked, IssueCount{Issue: issue, Count: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Issue < ranked[j].Issue
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// AccessibilitySummary is the count view of an accessibility report.
type AccessibilitySummary struct {
	TotalElements   int `json:"total_elements"`
	PassedElements  int `json:"passed_elements"`
	FailedElements  int `json:"failed_elements"`
	TouchTargetFail int `json:"touch_target_failures"`
	AriaViolations  int `json:"aria_violations"`
}

// AccessibilityReport composes raw check results with their summary.
type AccessibilityReport struct {
	TouchTargets []TouchTarget         `json:"touch_targets"`
	AriaResults  []AccessibilityResult `json:"aria_results"`
	Summary      AccessibilitySummary  `json:"summary"`
}

// RoleBasedSummary is the count view of a role-based report.
type RoleBasedSummary struct {
	TotalTests  int      `json:"total_tests"`
	PassedTests int      `json:"passed_tests"`
	FailedTests int      `json:"failed_tests"`
	Violations  []string `json:"violations"`
}

// RoleBasedReport holds per-role result arrays keyed by role name, in
// role-table order via RoleOrder.
type RoleBasedReport struct {
	RoleOrder []string                    `json:"role_order"`
	Results   map[string][]RoleTestResult `json:"results"`
	Summary   RoleBasedSummary            `json:"summary"`
}

// AdminNavigationSummary is the count view of an admin navigation report.
type AdminNavigationSummary struct {
	TotalElements    int          `json:"total_elements"`
	AccessibleCount  int          `json:"accessible_count"`
	ProtectedCount   int          `json:"protected_count"`
	ConfigIssueCount int          `json:"config_issue_count"`
	TopIssues        []IssueCount `json:"top_issues"`
}

// AdminNavigationReport composes admin element results with route
// configuration lint findings.
type AdminNavigationReport struct {
	Results      []AdminNavigationResult `json:"results"`
	ConfigIssues []string                `json:"config_issues"`
	Summary      AdminNavigationSummary  `json:"summary"`
}

// VisualFeedbackSummary is the count view of a visual feedback report.
type VisualFeedbackSummary struct {
	TotalElements    int           `json:"total_elements"`
	HoverFeedback    int           `json:"hover_feedback"`
	FocusFeedback    int           `json:"focus_feedback"`
	LoadingFeedback  int           `json:"loading_feedback"`
	MeanResponseTime time.Duration `json:"mean_response_time"`
}

// VisualFeedbackReport composes per-state feedback results with their
// summary.
type VisualFeedbackReport struct {
	Hover   []VisualFeedbackResult `json:"hover"`
	Focus   []VisualFeedbackResult `json:"focus"`
	Loading []VisualFeedbackResult `json:"loading"`
	Summary VisualFeedbackSummary  `json:"summary"`
}

// AuditSummary is the merged count view across all four checkers.
type AuditSummary struct {
	TotalElements  int          `json:"total_elements"`
	PassedElements int          `json:"passed_elements"`
	FailedElements int          `json:"failed_elements"`
	TopIssues      []IssueCount `json:"top_issues"`
}

// AuditReport is the final merged report the orchestrator consumes.
// RunToken correlates one audit run across logs and output.
type AuditReport struct {
	RunToken       string                `json:"run_token"`
	Accessibility  AccessibilityReport   `json:"accessibility"`
	RoleBased      RoleBasedReport       `json:"role_based"`
	AdminNav       AdminNavigationReport `json:"admin_navigation"`
	VisualFeedback VisualFeedbackReport  `json:"visual_feedback"`
	Summary        AuditSummary          `json:"summary"`
}
