package adminnav

import (
	"log/slog"
	"strings"

	"github.com/auditkit/navaudit/internal/element"
)

// handlerAttributes are inline or framework click-handler attributes
// accepted as evidence the element responds to activation.
var handlerAttributes = []string{
	"onclick", "onmousedown", "onkeydown",
	"data-onclick", "data-action",
	"@click", "v-on:click", "ng-click",
}

// protectionClassKeywords mark an element as participating in access
// control via class naming conventions.
var protectionClassKeywords = []string{"protected", "restricted", "admin-only", "secure", "auth"}

// conditionalVisibilityAttributes are framework constructs that gate
// rendering on state.
var conditionalVisibilityAttributes = []string{
	"data-visible-for", "data-show-if", "data-if", "v-if", "v-show", "ng-if", "ng-show",
}

// checkDOMAccessibility verifies the element is actually usable: visible,
// not disabled, and reachable through a href or a detectable click
// handler. Returns the overall accessibility verdict.
func (v *Validator) checkDOMAccessibility(el element.NavigationElement, result *element.AdminNavigationResult) bool {
	ok := true

	if !v.isRenderedVisible(el) {
		result.Issues = append(result.Issues, "Admin element is not visible")
		ok = false
	}
	if _, disabled := v.attribute(el, "disabled"); disabled {
		result.Issues = append(result.Issues, "Admin element is disabled")
		ok = false
	}
	if v.destination(el) == "" && !v.hasClickHandler(el) {
		result.Issues = append(result.Issues, "Admin element has no usable href or click handler")
		ok = false
	}

	return ok
}

func (v *Validator) isRenderedVisible(el element.NavigationElement) bool {
	if el.Node == nil {
		return el.IsVisible
	}
	styles, err := v.ins.ComputedStyle(el.Node, "display", "visibility")
	if err != nil {
		slog.Debug("visibility read failed", "element", el.ID, "error", err)
		return el.IsVisible
	}
	return styles.Get("display") != "none" && styles.Get("visibility") != "hidden"
}

// hasClickHandler looks for an inline handler attribute, a framework
// handler attribute, or the cursor:pointer heuristic.
func (v *Validator) hasClickHandler(el element.NavigationElement) bool {
	if el.Handler != "" {
		return true
	}
	for _, attr := range handlerAttributes {
		if _, ok := v.attribute(el, attr); ok {
			return true
		}
	}
	styles, err := v.ins.ComputedStyle(el.Node, "cursor")
	if err != nil {
		return false
	}
	return styles.Get("cursor") == "pointer"
}

// checkProtectionIndicators verifies a protected route's element carries
// some observable access-control marker: protection attributes, an
// admin-flavored aria-label, protection class names, or a protected
// ancestor. Unprotected routes vacuously pass.
func (v *Validator) checkProtectionIndicators(el element.NavigationElement, route element.AdminRoute, result *element.AdminNavigationResult) bool {
	if !route.IsProtected {
		return true
	}

	for _, attr := range []string{"data-protected", "data-permissions", "data-role"} {
		if _, ok := v.attribute(el, attr); ok {
			return true
		}
	}
	if element.ContainsAnyKeyword(v.ariaLabel(el), adminKeywords) {
		return true
	}
	class, _ := v.attribute(el, "class")
	if element.ContainsAnyKeyword(class, protectionClassKeywords) {
		return true
	}
	if el.Node != nil && v.ins.AncestorHasAttribute(el.Node, "data-protected", "data-permissions") {
		return true
	}

	result.Issues = append(result.Issues, "Protected route has no protection indicators")
	return false
}

// checkAdminRequirements validates admin-specific conventions: proper
// admin labeling, an accessible handle (label or role plus
// focusability), security indicators on protected routes, and
// admin-specific styling.
func (v *Validator) checkAdminRequirements(el element.NavigationElement, route element.AdminRoute, result *element.AdminNavigationResult) {
	title, _ := v.attribute(el, "title")
	labeled := element.ContainsAnyKeyword(v.text(el), adminKeywords) ||
		element.ContainsAnyKeyword(v.ariaLabel(el), adminKeywords) ||
		element.ContainsAnyKeyword(title, adminKeywords)
	if !labeled {
		result.Issues = append(result.Issues, "Admin element lacks admin labeling")
	}

	_, hasAria := v.attribute(el, "aria-label")
	_, hasRole := v.attribute(el, "role")
	if !(hasAria || hasRole) || !v.isFocusable(el) {
		result.Issues = append(result.Issues, "Admin element is not accessible to assistive technology")
	}

	if route.IsProtected {
		_, hasProtected := v.attribute(el, "data-protected")
		class, _ := v.attribute(el, "class")
		if !hasProtected && !element.ContainsAnyKeyword(class, protectionClassKeywords) {
			result.Issues = append(result.Issues, "Protected admin element shows no security indicator")
		}
	}

	class, _ := v.attribute(el, "class")
	if !element.ContainsAnyKeyword(class, adminKeywords) {
		result.Issues = append(result.Issues, "Admin element lacks admin-specific styling")
	}
}

func (v *Validator) isFocusable(el element.NavigationElement) bool {
	tag := ""
	if el.Node != nil {
		tag = v.ins.TagName(el.Node)
	}
	switch tag {
	case "a", "button", "input", "select", "textarea":
		_, disabled := v.attribute(el, "disabled")
		return !disabled
	}
	ti, ok := v.attribute(el, "tabindex")
	return ok && !strings.HasPrefix(strings.TrimSpace(ti), "-")
}

// checkPermissionEnforcement verifies the route declares permissions and
// the element observably enforces them: a permission-indicator attribute
// naming at least one required permission, and role-based visibility
// controls.
func (v *Validator) checkPermissionEnforcement(el element.NavigationElement, route element.AdminRoute, result *element.AdminNavigationResult) {
	if len(route.RequiredPermissions) == 0 {
		result.Issues = append(result.Issues, "Route declares no required permissions")
		return
	}

	if !v.hasPermissionIndicator(el, route.RequiredPermissions) {
		result.Issues = append(result.Issues, "No permission indicator matches the route requirements")
	}
	if !v.hasRoleVisibilityControls(el) {
		result.Issues = append(result.Issues, "No role-based visibility controls detected")
	}
}

func (v *Validator) hasPermissionIndicator(el element.NavigationElement, required []string) bool {
	for _, attr := range []string{"data-permissions", "data-required-permissions"} {
		val, ok := v.attribute(el, attr)
		if !ok {
			continue
		}
		for _, p := range required {
			if strings.Contains(val, p) {
				return true
			}
		}
	}
	return false
}

// hasRoleVisibilityControls looks for role-prefixed class names or
// conditional-visibility attributes.
func (v *Validator) hasRoleVisibilityControls(el element.NavigationElement) bool {
	if class, ok := v.attribute(el, "class"); ok {
		for _, cls := range strings.Fields(class) {
			if strings.HasPrefix(cls, "role-") {
				return true
			}
		}
	}
	if _, ok := v.attribute(el, "data-role"); ok {
		return true
	}
	for _, attr := range conditionalVisibilityAttributes {
		if _, ok := v.attribute(el, attr); ok {
			return true
		}
	}
	return false
}
