// Package testutil provides deterministic fakes for the audit engine:
// a FakeInspector implementing the inspection port, element builders,
// a FixedStopwatch, and a FixedTokens run-token generator.
package testutil

import (
	"sort"
	"strings"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

// FakeNode is an in-memory node behind a NodeRef. Build one with
// FakeInspector.Node and configure it with the fluent With* methods.
type FakeNode struct {
	key         string
	tag         string
	attrs       map[string]string
	text        string
	imageAlt    string
	hasImageAlt bool
	descendants []string
	ancestors   []string
	style       inspect.Styles
	rect        element.Rect
	hasRect     bool
	interactive bool

	simAfter map[inspect.Trigger]inspect.Styles
	simErr   error
	styleErr error
}

// NodeKey implements element.NodeRef.
func (n *FakeNode) NodeKey() string { return n.key }

// WithAttr sets an attribute.
func (n *FakeNode) WithAttr(name, value string) *FakeNode {
	n.attrs[name] = value
	return n
}

// WithText sets the text content.
func (n *FakeNode) WithText(text string) *FakeNode {
	n.text = text
	return n
}

// WithImageAlt declares a nested image with the given alt text.
func (n *FakeNode) WithImageAlt(alt string) *FakeNode {
	n.imageAlt = alt
	n.hasImageAlt = true
	return n
}

// WithDescendant declares a descendant matching the given selector.
func (n *FakeNode) WithDescendant(selector string) *FakeNode {
	n.descendants = append(n.descendants, selector)
	return n
}

// WithAncestorAttr declares an ancestor carrying the named attribute.
func (n *FakeNode) WithAncestorAttr(name string) *FakeNode {
	n.ancestors = append(n.ancestors, name)
	return n
}

// WithStyle sets one computed style property.
func (n *FakeNode) WithStyle(prop, value string) *FakeNode {
	n.style[prop] = value
	return n
}

// WithRect sets the rendered geometry.
func (n *FakeNode) WithRect(r element.Rect) *FakeNode {
	n.rect = r
	n.hasRect = true
	return n
}

// Interactive marks the node as interactive; interactive nodes are
// returned by InteractiveNodes and considered by the spacing check.
func (n *FakeNode) Interactive() *FakeNode {
	n.interactive = true
	return n
}

// WithSimulatedChange declares that applying trigger to a clone of this
// node yields the given after-values for the changed properties.
func (n *FakeNode) WithSimulatedChange(trigger inspect.Trigger, after inspect.Styles) *FakeNode {
	n.simAfter[trigger] = after
	return n
}

// WithSimulateError makes Simulate fail for this node.
func (n *FakeNode) WithSimulateError(err error) *FakeNode {
	n.simErr = err
	return n
}

// WithStyleError makes ComputedStyle fail for this node.
func (n *FakeNode) WithStyleError(err error) *FakeNode {
	n.styleErr = err
	return n
}

// FakeInspector is a deterministic in-memory Inspector.
//
// Node enumeration order is stable (insertion order) so batch results are
// reproducible, matching the engine's deterministic-output requirement.
type FakeInspector struct {
	nodes []*FakeNode
	byKey map[string]*FakeNode

	// SimulateCalls counts clone simulations, letting tests assert the
	// active path ran (or was skipped on passive evidence).
	SimulateCalls int
}

// NewFakeInspector creates an empty fake environment.
func NewFakeInspector() *FakeInspector {
	return &FakeInspector{byKey: map[string]*FakeNode{}}
}

// Node registers a fake node with the given key and tag and returns it
// for fluent configuration.
func (f *FakeInspector) Node(key, tag string) *FakeNode {
	n := &FakeNode{
		key:      key,
		tag:      strings.ToLower(tag),
		attrs:    map[string]string{},
		style:    inspect.Styles{},
		simAfter: map[inspect.Trigger]inspect.Styles{},
	}
	f.nodes = append(f.nodes, n)
	f.byKey[key] = n
	return n
}

func (f *FakeInspector) resolve(ref element.NodeRef) (*FakeNode, *inspect.InspectError) {
	if ref == nil {
		return nil, inspect.NewNodeNotFound("")
	}
	n, ok := f.byKey[ref.NodeKey()]
	if !ok {
		return nil, inspect.NewNodeNotFound(ref.NodeKey())
	}
	return n, nil
}

// TagName implements inspect.Inspector.
func (f *FakeInspector) TagName(ref element.NodeRef) string {
	n, err := f.resolve(ref)
	if err != nil {
		return ""
	}
	return n.tag
}

// Attribute implements inspect.Inspector.
func (f *FakeInspector) Attribute(ref element.NodeRef, name string) (string, bool) {
	n, err := f.resolve(ref)
	if err != nil {
		return "", false
	}
	v, ok := n.attrs[name]
	return v, ok
}

// TextContent implements inspect.Inspector.
func (f *FakeInspector) TextContent(ref element.NodeRef) string {
	n, err := f.resolve(ref)
	if err != nil {
		return ""
	}
	return n.text
}

// ReferencedText implements inspect.Inspector. It resolves id against the
// registered nodes' "id" attributes.
func (f *FakeInspector) ReferencedText(id string) string {
	for _, n := range f.nodes {
		if n.attrs["id"] == id {
			return n.text
		}
	}
	return ""
}

// NestedImageAlt implements inspect.Inspector.
func (f *FakeInspector) NestedImageAlt(ref element.NodeRef) (string, bool) {
	n, err := f.resolve(ref)
	if err != nil {
		return "", false
	}
	return n.imageAlt, n.hasImageAlt
}

// HasDescendant implements inspect.Inspector.
func (f *FakeInspector) HasDescendant(ref element.NodeRef, selector string) bool {
	n, err := f.resolve(ref)
	if err != nil {
		return false
	}
	for _, d := range n.descendants {
		if d == selector {
			return true
		}
	}
	return false
}

// AncestorHasAttribute implements inspect.Inspector.
func (f *FakeInspector) AncestorHasAttribute(ref element.NodeRef, names ...string) bool {
	n, err := f.resolve(ref)
	if err != nil {
		return false
	}
	for _, name := range names {
		for _, a := range n.ancestors {
			if a == name {
				return true
			}
		}
	}
	return false
}

// ComputedStyle implements inspect.Inspector.
func (f *FakeInspector) ComputedStyle(ref element.NodeRef, props ...string) (inspect.Styles, error) {
	n, ierr := f.resolve(ref)
	if ierr != nil {
		return nil, ierr
	}
	if n.styleErr != nil {
		return nil, n.styleErr
	}
	out := inspect.Styles{}
	if len(props) == 0 {
		for p, v := range n.style {
			out[p] = v
		}
		return out, nil
	}
	for _, p := range props {
		if v, ok := n.style[p]; ok {
			out[p] = v
		}
	}
	return out, nil
}

// BoundingRect implements inspect.Inspector.
func (f *FakeInspector) BoundingRect(ref element.NodeRef) (element.Rect, error) {
	n, ierr := f.resolve(ref)
	if ierr != nil {
		return element.Rect{}, ierr
	}
	if !n.hasRect {
		return element.Rect{}, &inspect.InspectError{
			Code:    inspect.ErrCodeStyleUnavailable,
			Message: "no geometry recorded",
			NodeKey: n.key,
		}
	}
	return n.rect, nil
}

// InteractiveNodes implements inspect.Inspector.
func (f *FakeInspector) InteractiveNodes() ([]element.NodeRef, error) {
	refs := make([]element.NodeRef, 0, len(f.nodes))
	for _, n := range f.nodes {
		if n.interactive {
			refs = append(refs, n)
		}
	}
	return refs, nil
}

// Simulate implements inspect.Inspector. The "clone" is purely notional:
// before is the node's configured style restricted to props, after is
// before overlaid with the declared per-trigger changes.
func (f *FakeInspector) Simulate(ref element.NodeRef, trigger inspect.Trigger, props []string) (inspect.Simulation, error) {
	f.SimulateCalls++

	n, ierr := f.resolve(ref)
	if ierr != nil {
		return inspect.Simulation{}, ierr
	}
	if n.simErr != nil {
		return inspect.Simulation{}, inspect.NewSimulationFailed(n.key, n.simErr)
	}

	before := inspect.Styles{}
	for _, p := range props {
		if v, ok := n.style[p]; ok {
			before[p] = v
		}
	}
	after := inspect.Styles{}
	for p, v := range before {
		after[p] = v
	}
	for p, v := range n.simAfter[trigger] {
		// Only report properties the caller asked for.
		if containsProp(props, p) {
			after[p] = v
		}
	}
	return inspect.Simulation{Before: before, After: after}, nil
}

func containsProp(props []string, p string) bool {
	for _, q := range props {
		if q == p {
			return true
		}
	}
	return false
}

// Keys returns all registered node keys, sorted. Useful for debugging
// failing tests.
func (f *FakeInspector) Keys() []string {
	keys := make([]string, 0, len(f.byKey))
	for k := range f.byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
