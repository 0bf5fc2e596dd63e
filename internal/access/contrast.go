package access

import (
	"log/slog"
	"strings"

	"github.com/auditkit/navaudit/internal/element"
)

// lightColors are foreground values treated as "light" by the contrast
// heuristic.
var lightColors = map[string]bool{
	"white":              true,
	"#fff":               true,
	"#ffffff":            true,
	"rgb(255, 255, 255)": true,
	"rgb(255,255,255)":   true,
}

// checkContrast applies the coarse contrast heuristic: identical
// foreground and background, or light text over a transparent
// background, is flagged as a possible issue.
//
// This is deliberately NOT a WCAG relative-luminance ratio; the
// heuristic only catches the degenerate cases a string comparison can
// see, and findings land in Recommendations, not Violations.
func (c *Checker) checkContrast(el element.NavigationElement, result *element.AccessibilityResult) {
	styles, err := c.ins.ComputedStyle(el.Node, "color", "background-color")
	if err != nil {
		slog.Debug("contrast style read failed", "element", el.ID, "error", err)
		return
	}

	fg := normalizeColor(styles.Get("color"))
	bg := normalizeColor(styles.Get("background-color"))

	if fg != "" && fg == bg {
		result.Recommendations = append(result.Recommendations,
			"Possible contrast issue: foreground and background colors are identical")
		return
	}
	if lightColors[fg] && isTransparent(bg) {
		result.Recommendations = append(result.Recommendations,
			"Possible contrast issue: light text on a transparent background")
	}
}

func normalizeColor(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func isTransparent(v string) bool {
	return v == "" || v == "transparent" || v == "rgba(0, 0, 0, 0)" || v == "rgba(0,0,0,0)"
}
