package access

import (
	"fmt"
	"strings"

	"github.com/auditkit/navaudit/internal/element"
)

// allowedRoles is the fixed allow-list of ARIA roles accepted on any
// element. Roles outside this set are violations.
var allowedRoles = map[string]bool{
	"button": true, "link": true, "menuitem": true, "tab": true,
	"tabpanel": true, "option": true, "checkbox": true, "radio": true,
	"slider": true, "spinbutton": true, "textbox": true, "combobox": true,
	"listbox": true, "tree": true, "grid": true, "navigation": true,
	"banner": true, "main": true, "complementary": true, "contentinfo": true,
	"search": true, "form": true, "region": true, "article": true,
	"section": true, "heading": true, "list": true, "listitem": true,
	"table": true, "row": true, "cell": true, "columnheader": true,
	"rowheader": true, "group": true, "presentation": true, "none": true,
}

// ariaStateChecks lists validated ARIA state attributes with their
// allowed value sets. A slice, not a map: violation order must be
// deterministic for reproducible reports.
var ariaStateChecks = []struct {
	attr    string
	allowed map[string]bool
}{
	{"aria-expanded", map[string]bool{"true": true, "false": true}},
	{"aria-pressed", map[string]bool{"true": true, "false": true, "mixed": true}},
	{"aria-selected", map[string]bool{"true": true, "false": true}},
}

// AccessibleName resolves an element's accessible name by the priority
// chain: aria-label, text of the node referenced by aria-labelledby,
// title attribute, visible text content, alt of a nested image.
// Returns "" when the whole chain comes up empty.
func (c *Checker) AccessibleName(el element.NavigationElement) string {
	if v, ok := c.ins.Attribute(el.Node, "aria-label"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if id, ok := c.ins.Attribute(el.Node, "aria-labelledby"); ok && id != "" {
		if text := strings.TrimSpace(c.ins.ReferencedText(id)); text != "" {
			return text
		}
	}
	if v, ok := c.ins.Attribute(el.Node, "title"); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if text := strings.TrimSpace(c.ins.TextContent(el.Node)); text != "" {
		return text
	}
	if alt, ok := c.ins.NestedImageAlt(el.Node); ok && strings.TrimSpace(alt) != "" {
		return strings.TrimSpace(alt)
	}
	return ""
}

// ValidateARIALabels runs the ARIA, keyboard, focus-indicator, and
// contrast checks per element. Output order matches input order; every
// input yields exactly one result. A per-element inspection failure is
// converted into a generic violation on that element.
func (c *Checker) ValidateARIALabels(elements []element.NavigationElement) []element.AccessibilityResult {
	results := make([]element.AccessibilityResult, 0, len(elements))

	for _, el := range elements {
		result := element.AccessibilityResult{
			Element:         el,
			Violations:      []string{},
			Recommendations: []string{},
		}

		if el.Node == nil {
			result.Violations = append(result.Violations, "Element could not be analyzed")
			results = append(results, result)
			continue
		}

		c.checkAccessibleName(el, &result)
		c.checkRole(el, &result)
		c.checkAriaStates(el, &result)
		c.checkAriaHidden(el, &result)
		c.checkKeyboardAccess(el, &result)
		c.checkFocusIndicator(el, &result)
		c.checkContrast(el, &result)

		c.cacheResult(result)
		results = append(results, result)
	}

	return results
}

func (c *Checker) checkAccessibleName(el element.NavigationElement, result *element.AccessibilityResult) {
	if c.AccessibleName(el) == "" {
		result.Violations = append(result.Violations, "Missing accessible name")
		result.Recommendations = append(result.Recommendations,
			"Add an aria-label, aria-labelledby reference, title, or visible text")
	}
}

// checkRole flags non-semantic containers without a role and any role
// outside the allow-list.
func (c *Checker) checkRole(el element.NavigationElement, result *element.AccessibilityResult) {
	tag := c.ins.TagName(el.Node)
	role, hasRole := c.ins.Attribute(el.Node, "role")
	role = strings.ToLower(strings.TrimSpace(role))

	if (tag == "div" || tag == "span") && (!hasRole || role == "") {
		result.Violations = append(result.Violations,
			"Non-semantic container used interactively without a role")
		result.Recommendations = append(result.Recommendations,
			"Use a native interactive element or declare an appropriate role")
		return
	}

	if hasRole && role != "" && !allowedRoles[role] {
		result.Violations = append(result.Violations,
			fmt.Sprintf("Unknown ARIA role: %q", role))
	}
}

func (c *Checker) checkAriaStates(el element.NavigationElement, result *element.AccessibilityResult) {
	for _, check := range ariaStateChecks {
		v, ok := c.ins.Attribute(el.Node, check.attr)
		if !ok {
			continue
		}
		if !check.allowed[strings.ToLower(strings.TrimSpace(v))] {
			result.Violations = append(result.Violations,
				fmt.Sprintf("Invalid %s value: %q", check.attr, v))
		}
	}
}

// checkAriaHidden flags interactive elements removed from the
// accessibility tree.
func (c *Checker) checkAriaHidden(el element.NavigationElement, result *element.AccessibilityResult) {
	if v, ok := c.ins.Attribute(el.Node, "aria-hidden"); ok && v == "true" && el.IsInteractive {
		result.Violations = append(result.Violations,
			"Interactive element hidden from screen readers")
		result.Recommendations = append(result.Recommendations,
			"Remove aria-hidden from interactive elements")
	}
}
