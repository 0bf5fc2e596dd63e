package inspect

import (
	"github.com/auditkit/navaudit/internal/element"
)

// Styles maps CSS property names to resolved computed values.
type Styles map[string]string

// Get returns the value for prop, or "" when absent.
func (s Styles) Get(prop string) string {
	if s == nil {
		return ""
	}
	return s[prop]
}

// Diff returns the properties whose values differ between s and after,
// keyed by property with the after-value. Properties present only in
// after count as changed.
func (s Styles) Diff(after Styles) Styles {
	changed := Styles{}
	for prop, afterVal := range after {
		if s.Get(prop) != afterVal {
			changed[prop] = afterVal
		}
	}
	return changed
}

// Trigger names a simulated interaction applied to an off-screen clone.
type Trigger string

const (
	// TriggerHover adds a "hover" class and dispatches a mouseover event.
	TriggerHover Trigger = "hover"

	// TriggerFocus calls focus() on the clone.
	TriggerFocus Trigger = "focus"
)

// Simulation is the before/after style snapshot of one clone simulation.
type Simulation struct {
	Before Styles
	After  Styles
}

// Changed returns the properties that differ between the snapshots.
func (s Simulation) Changed() Styles {
	return s.Before.Diff(s.After)
}

// Inspector is the read-only environment port.
//
// Implementations resolve element.NodeRef handles back to their own
// nodes. Every method must treat the referenced node as read-only; the
// only permitted mutation is the ephemeral off-screen clone created
// inside Simulate, which MUST be removed on all exit paths.
//
// Lookup failures return InspectError (see errors.go); checkers convert
// them into degraded per-element results rather than aborting a batch.
type Inspector interface {
	// TagName returns the lowercase tag name of the node, "" if unknown.
	TagName(ref element.NodeRef) string

	// Attribute returns the value of a node attribute and whether it is set.
	Attribute(ref element.NodeRef, name string) (string, bool)

	// TextContent returns the node's text content, whitespace included.
	TextContent(ref element.NodeRef) string

	// ReferencedText resolves an id (e.g. from aria-labelledby) to the
	// text content of the node carrying it. Empty when unresolvable.
	ReferencedText(id string) string

	// NestedImageAlt returns the alt text of a nested image, if any.
	NestedImageAlt(ref element.NodeRef) (string, bool)

	// HasDescendant reports whether any descendant matches the selector.
	HasDescendant(ref element.NodeRef, selector string) bool

	// AncestorHasAttribute reports whether any ancestor carries one of
	// the named attributes.
	AncestorHasAttribute(ref element.NodeRef, names ...string) bool

	// ComputedStyle returns resolved style values for the given properties.
	ComputedStyle(ref element.NodeRef, props ...string) (Styles, error)

	// BoundingRect returns the node's rendered geometry.
	BoundingRect(ref element.NodeRef) (element.Rect, error)

	// InteractiveNodes enumerates every currently-queryable interactive
	// node in the environment, not just the audited element list.
	// Used by the spacing check to find neighbors.
	InteractiveNodes() ([]element.NodeRef, error)

	// Simulate clones the node off-screen, snapshots props, applies the
	// trigger, re-snapshots, and removes the clone. The clone must be
	// released on all exit paths, including errors mid-simulation.
	Simulate(ref element.NodeRef, trigger Trigger, props []string) (Simulation, error)
}

// SimulationProps is the fixed property set snapshotted around a
// hover/focus simulation.
var SimulationProps = []string{
	"background-color",
	"color",
	"border",
	"box-shadow",
	"outline",
	"transform",
	"opacity",
	"text-decoration",
}

// FocusIndicatorProps are the properties examined for a visible focus
// indicator on the focused clone.
var FocusIndicatorProps = []string{"outline", "outline-width", "box-shadow", "border-width"}
