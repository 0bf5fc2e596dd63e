package feedback

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/auditkit/navaudit/internal/element"
)

// passiveProps is the property set inspected for static hover/focus
// evidence.
var passiveProps = []string{
	"cursor", "transition", "transform", "opacity",
	"box-shadow", "border", "background-color",
}

// loadingSelectors match descendant spinner or progress markup.
var loadingSelectors = []string{
	".spinner",
	".loader",
	".loading-indicator",
	`[role="progressbar"]`,
}

// loadingClassKeywords mark loading state via class naming conventions.
var loadingClassKeywords = []string{"loading", "spinner", "busy", "pending", "progress"}

// loadingTextKeywords mark loading state via visible text.
var loadingTextKeywords = []string{"loading", "please wait", "processing"}

// passiveEvidence collects static style properties that suggest the
// element reacts to pointer or focus interaction: a pointer cursor, a
// declared transition or transform, partial opacity, a shadow, a border,
// or an explicit background color. Matched properties are returned with
// their computed values. A style read failure yields no evidence.
func (v *Validator) passiveEvidence(el element.NavigationElement) map[string]string {
	styles, err := v.ins.ComputedStyle(el.Node, passiveProps...)
	if err != nil {
		slog.Debug("style read failed", "element", el.ID, "error", err)
		return nil
	}

	evidence := map[string]string{}
	if styles.Get("cursor") == "pointer" {
		evidence["cursor"] = "pointer"
	}
	if val := styles.Get("transition"); isMeaningful(val) {
		evidence["transition"] = val
	}
	if val := styles.Get("transform"); isMeaningful(val) {
		evidence["transform"] = val
	}
	if val := styles.Get("opacity"); isPartialOpacity(val) {
		evidence["opacity"] = val
	}
	if val := styles.Get("box-shadow"); isMeaningful(val) {
		evidence["box-shadow"] = val
	}
	if val := styles.Get("border"); isMeaningful(val) {
		evidence["border"] = val
	}
	if val := styles.Get("background-color"); val != "" && !isTransparentColor(val) {
		evidence["background-color"] = val
	}
	return evidence
}

// loadingEvidence collects loading-state signals: spinner descendants,
// disabled state, loading class names, aria-busy, reduced opacity, a
// wait/progress cursor, loading text, or a running CSS animation.
// Style-based signals are recorded into props.
func (v *Validator) loadingEvidence(el element.NavigationElement, props map[string]string) bool {
	found := false

	for _, sel := range loadingSelectors {
		if v.ins.HasDescendant(el.Node, sel) {
			found = true
			break
		}
	}

	if _, disabled := v.ins.Attribute(el.Node, "disabled"); disabled {
		found = true
	}
	if val, ok := v.ins.Attribute(el.Node, "aria-disabled"); ok && val == "true" {
		found = true
	}
	if class, ok := v.ins.Attribute(el.Node, "class"); ok &&
		element.ContainsAnyKeyword(class, loadingClassKeywords) {
		found = true
	}
	if val, ok := v.ins.Attribute(el.Node, "aria-busy"); ok && val == "true" {
		found = true
	}
	if element.ContainsAnyKeyword(v.ins.TextContent(el.Node), loadingTextKeywords) {
		found = true
	}

	styles, err := v.ins.ComputedStyle(el.Node, "opacity", "cursor", "animation", "animation-name")
	if err != nil {
		slog.Debug("style read failed", "element", el.ID, "error", err)
		return found
	}
	if val := styles.Get("opacity"); isPartialOpacity(val) {
		props["opacity"] = val
		found = true
	}
	if cursor := styles.Get("cursor"); cursor == "wait" || cursor == "progress" {
		props["cursor"] = cursor
		found = true
	}
	if val := styles.Get("animation"); isMeaningful(val) {
		props["animation"] = val
		found = true
	}
	if val := styles.Get("animation-name"); isMeaningful(val) {
		props["animation-name"] = val
		found = true
	}

	return found
}

// isMeaningful reports whether a computed value carries an actual
// declaration rather than a none/initial default.
func isMeaningful(val string) bool {
	val = strings.TrimSpace(val)
	if val == "" || val == "none" {
		return false
	}
	// Shorthands like "0px none rgb(0, 0, 0)" reduce to no declaration.
	return !strings.Contains(val, "none")
}

// isPartialOpacity reports whether val parses to an opacity strictly
// between 0 and 1.
func isPartialOpacity(val string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return false
	}
	return f > 0 && f < 1
}

func isTransparentColor(val string) bool {
	val = strings.TrimSpace(val)
	return val == "transparent" || val == "rgba(0, 0, 0, 0)" || val == "rgba(0,0,0,0)"
}
