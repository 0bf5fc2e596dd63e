package report

import (
	"encoding/json"
	"fmt"

	"github.com/auditkit/navaudit/internal/element"
)

// MarshalReport encodes an audit report as canonical indented JSON:
// struct fields in declaration order, map keys sorted, trailing newline.
// Two encodings of the same report are byte-identical, which makes the
// output safe for golden comparison and diffing between runs.
func MarshalReport(r element.AuditReport) ([]byte, error) {
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding audit report: %w", err)
	}
	return append(out, '\n'), nil
}

// MarshalSummary encodes only the run token and the five summary blocks,
// the shape used for golden snapshots and the text formatter's JSON mode.
func MarshalSummary(r element.AuditReport) ([]byte, error) {
	digest := struct {
		RunToken       string                         `json:"run_token"`
		Summary        element.AuditSummary           `json:"summary"`
		Accessibility  element.AccessibilitySummary   `json:"accessibility"`
		RoleBased      element.RoleBasedSummary       `json:"role_based"`
		AdminNav       element.AdminNavigationSummary `json:"admin_navigation"`
		VisualFeedback element.VisualFeedbackSummary  `json:"visual_feedback"`
	}{
		RunToken:       r.RunToken,
		Summary:        r.Summary,
		Accessibility:  r.Accessibility.Summary,
		RoleBased:      r.RoleBased.Summary,
		AdminNav:       r.AdminNav.Summary,
		VisualFeedback: r.VisualFeedback.Summary,
	}

	out, err := json.MarshalIndent(digest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding audit summary: %w", err)
	}
	return append(out, '\n'), nil
}
