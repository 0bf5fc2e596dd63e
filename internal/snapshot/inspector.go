package snapshot

import (
	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

// Inspector replays a snapshot's recorded observations through the
// inspection port. Read-only after construction, safe for concurrent
// use.
type Inspector struct {
	byKey map[string]*NodeSpec
	order []string
}

// Inspector builds the replay adapter for this snapshot.
func (s *Snapshot) Inspector() *Inspector {
	ins := &Inspector{
		byKey: make(map[string]*NodeSpec, len(s.Nodes)),
		order: make([]string, 0, len(s.Nodes)),
	}
	for i := range s.Nodes {
		n := &s.Nodes[i]
		ins.byKey[n.Key] = n
		ins.order = append(ins.order, n.Key)
	}
	return ins
}

func (ins *Inspector) resolve(ref element.NodeRef) (*NodeSpec, error) {
	if ref == nil {
		return nil, inspect.NewNodeNotFound("")
	}
	n, ok := ins.byKey[ref.NodeKey()]
	if !ok {
		return nil, inspect.NewNodeNotFound(ref.NodeKey())
	}
	return n, nil
}

// TagName implements inspect.Inspector.
func (ins *Inspector) TagName(ref element.NodeRef) string {
	n, err := ins.resolve(ref)
	if err != nil {
		return ""
	}
	return n.Tag
}

// Attribute implements inspect.Inspector.
func (ins *Inspector) Attribute(ref element.NodeRef, name string) (string, bool) {
	n, err := ins.resolve(ref)
	if err != nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// TextContent implements inspect.Inspector.
func (ins *Inspector) TextContent(ref element.NodeRef) string {
	n, err := ins.resolve(ref)
	if err != nil {
		return ""
	}
	return n.Text
}

// ReferencedText implements inspect.Inspector. It resolves id against
// the recorded nodes' "id" attributes.
func (ins *Inspector) ReferencedText(id string) string {
	for _, key := range ins.order {
		if ins.byKey[key].Attrs["id"] == id {
			return ins.byKey[key].Text
		}
	}
	return ""
}

// NestedImageAlt implements inspect.Inspector.
func (ins *Inspector) NestedImageAlt(ref element.NodeRef) (string, bool) {
	n, err := ins.resolve(ref)
	if err != nil || n.ImageAlt == nil {
		return "", false
	}
	return *n.ImageAlt, true
}

// HasDescendant implements inspect.Inspector.
func (ins *Inspector) HasDescendant(ref element.NodeRef, selector string) bool {
	n, err := ins.resolve(ref)
	if err != nil {
		return false
	}
	for _, d := range n.Descendants {
		if d == selector {
			return true
		}
	}
	return false
}

// AncestorHasAttribute implements inspect.Inspector.
func (ins *Inspector) AncestorHasAttribute(ref element.NodeRef, names ...string) bool {
	n, err := ins.resolve(ref)
	if err != nil {
		return false
	}
	for _, name := range names {
		for _, a := range n.AncestorAttrs {
			if a == name {
				return true
			}
		}
	}
	return false
}

// ComputedStyle implements inspect.Inspector.
func (ins *Inspector) ComputedStyle(ref element.NodeRef, props ...string) (inspect.Styles, error) {
	n, err := ins.resolve(ref)
	if err != nil {
		return nil, err
	}

	out := inspect.Styles{}
	if len(props) == 0 {
		for p, v := range n.Styles {
			out[p] = v
		}
		return out, nil
	}
	for _, p := range props {
		if v, ok := n.Styles[p]; ok {
			out[p] = v
		}
	}
	return out, nil
}

// BoundingRect implements inspect.Inspector.
func (ins *Inspector) BoundingRect(ref element.NodeRef) (element.Rect, error) {
	n, err := ins.resolve(ref)
	if err != nil {
		return element.Rect{}, err
	}
	if n.Rect == nil {
		return element.Rect{}, &inspect.InspectError{
			Code:    inspect.ErrCodeStyleUnavailable,
			Message: "no geometry recorded",
			NodeKey: n.Key,
		}
	}
	return *n.Rect, nil
}

// InteractiveNodes implements inspect.Inspector. Declaration order is
// preserved, keeping batch output reproducible.
func (ins *Inspector) InteractiveNodes() ([]element.NodeRef, error) {
	refs := []element.NodeRef{}
	for _, key := range ins.order {
		if ins.byKey[key].Interactive {
			refs = append(refs, nodeRef(key))
		}
	}
	return refs, nil
}

// Simulate implements inspect.Inspector by replaying the recorded
// outcome for the trigger. A node without a recorded simulation yields
// an unchanged snapshot, which checkers read as "no feedback".
func (ins *Inspector) Simulate(ref element.NodeRef, trigger inspect.Trigger, props []string) (inspect.Simulation, error) {
	n, err := ins.resolve(ref)
	if err != nil {
		return inspect.Simulation{}, err
	}

	before := inspect.Styles{}
	for _, p := range props {
		if v, ok := n.Styles[p]; ok {
			before[p] = v
		}
	}
	after := inspect.Styles{}
	for p, v := range before {
		after[p] = v
	}
	for _, sim := range n.Simulations {
		if inspect.Trigger(sim.Trigger) != trigger {
			continue
		}
		for p, v := range sim.After {
			for _, want := range props {
				if want == p {
					after[p] = v
				}
			}
		}
	}
	return inspect.Simulation{Before: before, After: after}, nil
}
