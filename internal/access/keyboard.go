package access

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

// nativeFocusableTags are focusable without a tabindex, unless disabled.
var nativeFocusableTags = map[string]bool{
	"a": true, "button": true, "input": true, "select": true, "textarea": true,
}

// checkKeyboardAccess verifies the element can receive keyboard focus:
// native focusable tags pass unless disabled, everything else needs a
// non-negative tabindex.
func (c *Checker) checkKeyboardAccess(el element.NavigationElement, result *element.AccessibilityResult) {
	tag := c.ins.TagName(el.Node)

	if nativeFocusableTags[tag] {
		if _, disabled := c.ins.Attribute(el.Node, "disabled"); disabled {
			result.Violations = append(result.Violations,
				"Element is disabled and not keyboard accessible")
		}
		return
	}

	ti, ok := c.ins.Attribute(el.Node, "tabindex")
	if !ok {
		result.Violations = append(result.Violations,
			"Element is not keyboard accessible")
		result.Recommendations = append(result.Recommendations,
			"Add tabindex=\"0\" or use a native interactive element")
		return
	}
	idx, err := strconv.Atoi(strings.TrimSpace(ti))
	if err != nil || idx < 0 {
		result.Violations = append(result.Violations,
			"Element is not keyboard accessible")
	}
}

// checkFocusIndicator focuses an off-screen clone of the element and
// looks for a visible indicator: a non-none outline, a non-none
// box-shadow, or a non-zero border. A simulation failure degrades to the
// conservative "no finding" default rather than flagging the element.
func (c *Checker) checkFocusIndicator(el element.NavigationElement, result *element.AccessibilityResult) {
	sim, err := c.ins.Simulate(el.Node, inspect.TriggerFocus, inspect.FocusIndicatorProps)
	if err != nil {
		slog.Debug("focus simulation failed", "element", el.ID, "error", err)
		return
	}

	if hasFocusIndicator(sim.After) {
		return
	}

	result.Violations = append(result.Violations, "No visible focus indicator")
	result.Recommendations = append(result.Recommendations,
		"Style :focus with an outline or box-shadow")
}

func hasFocusIndicator(focused inspect.Styles) bool {
	if v := focused.Get("outline"); v != "" && !strings.Contains(v, "none") && !strings.HasPrefix(v, "0") {
		return true
	}
	if v := focused.Get("outline-width"); v != "" && v != "0px" && v != "0" {
		return true
	}
	if v := focused.Get("box-shadow"); v != "" && v != "none" {
		return true
	}
	if v := focused.Get("border-width"); v != "" && v != "0px" && v != "0" {
		return true
	}
	return false
}
