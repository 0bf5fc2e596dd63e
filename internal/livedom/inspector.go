package livedom

import (
	"fmt"
	"strings"

	"github.com/go-rod/rod"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

// Adapter is the live-page inspection adapter. Node handles stay valid
// for the lifetime of the page; a navigation invalidates them.
type Adapter struct {
	page     *rod.Page
	byKey    map[string]*rod.Element
	order    []string
	elements []element.NavigationElement
}

// Elements returns the extracted navigation elements in document order.
func (a *Adapter) Elements() []element.NavigationElement {
	out := make([]element.NavigationElement, len(a.elements))
	copy(out, a.elements)
	return out
}

func (a *Adapter) resolve(ref element.NodeRef) (*rod.Element, error) {
	if ref == nil {
		return nil, inspect.NewNodeNotFound("")
	}
	n, ok := a.byKey[ref.NodeKey()]
	if !ok {
		return nil, inspect.NewNodeNotFound(ref.NodeKey())
	}
	return n, nil
}

// TagName implements inspect.Inspector.
func (a *Adapter) TagName(ref element.NodeRef) string {
	n, err := a.resolve(ref)
	if err != nil {
		return ""
	}
	obj, err := n.Eval(`() => this.tagName.toLowerCase()`)
	if err != nil {
		return ""
	}
	return obj.Value.Str()
}

// Attribute implements inspect.Inspector.
func (a *Adapter) Attribute(ref element.NodeRef, name string) (string, bool) {
	n, err := a.resolve(ref)
	if err != nil {
		return "", false
	}
	v, err := n.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

// TextContent implements inspect.Inspector.
func (a *Adapter) TextContent(ref element.NodeRef) string {
	n, err := a.resolve(ref)
	if err != nil {
		return ""
	}
	text, err := n.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// ReferencedText implements inspect.Inspector.
func (a *Adapter) ReferencedText(id string) string {
	obj, err := a.page.Eval(`(id) => {
		const n = document.getElementById(id);
		return n ? n.textContent : "";
	}`, id)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(obj.Value.Str())
}

// NestedImageAlt implements inspect.Inspector.
func (a *Adapter) NestedImageAlt(ref element.NodeRef) (string, bool) {
	n, err := a.resolve(ref)
	if err != nil {
		return "", false
	}
	obj, err := n.Eval(`() => {
		const img = this.querySelector("img[alt]");
		return img ? img.getAttribute("alt") : null;
	}`)
	if err != nil || obj.Value.Nil() {
		return "", false
	}
	return obj.Value.Str(), true
}

// HasDescendant implements inspect.Inspector.
func (a *Adapter) HasDescendant(ref element.NodeRef, selector string) bool {
	n, err := a.resolve(ref)
	if err != nil {
		return false
	}
	obj, err := n.Eval(`(sel) => this.querySelector(sel) !== null`, selector)
	if err != nil {
		return false
	}
	return obj.Value.Bool()
}

// AncestorHasAttribute implements inspect.Inspector.
func (a *Adapter) AncestorHasAttribute(ref element.NodeRef, names ...string) bool {
	n, err := a.resolve(ref)
	if err != nil {
		return false
	}
	obj, err := n.Eval(`(names) => {
		for (let p = this.parentElement; p; p = p.parentElement) {
			for (const name of names) {
				if (p.hasAttribute(name)) return true;
			}
		}
		return false;
	}`, names)
	if err != nil {
		return false
	}
	return obj.Value.Bool()
}

// ComputedStyle implements inspect.Inspector against the renderer's
// resolved cascade.
func (a *Adapter) ComputedStyle(ref element.NodeRef, props ...string) (inspect.Styles, error) {
	n, err := a.resolve(ref)
	if err != nil {
		return nil, err
	}
	obj, err := n.Eval(`(props) => {
		const style = getComputedStyle(this);
		const out = {};
		for (const p of props) out[p] = style.getPropertyValue(p);
		return out;
	}`, props)
	if err != nil {
		return nil, &inspect.InspectError{
			Code:    inspect.ErrCodeStyleUnavailable,
			Message: "computed style read failed",
			NodeKey: ref.NodeKey(),
			Err:     err,
		}
	}

	styles := inspect.Styles{}
	for prop, val := range obj.Value.Map() {
		styles[prop] = val.Str()
	}
	return styles, nil
}

// BoundingRect implements inspect.Inspector.
func (a *Adapter) BoundingRect(ref element.NodeRef) (element.Rect, error) {
	n, err := a.resolve(ref)
	if err != nil {
		return element.Rect{}, err
	}
	obj, err := n.Eval(`() => {
		const r = this.getBoundingClientRect();
		return {x: r.x, y: r.y, width: r.width, height: r.height};
	}`)
	if err != nil {
		return element.Rect{}, &inspect.InspectError{
			Code:    inspect.ErrCodeStyleUnavailable,
			Message: "geometry read failed",
			NodeKey: ref.NodeKey(),
			Err:     err,
		}
	}
	v := obj.Value
	return element.Rect{
		X:      v.Get("x").Num(),
		Y:      v.Get("y").Num(),
		Width:  v.Get("width").Num(),
		Height: v.Get("height").Num(),
	}, nil
}

// InteractiveNodes implements inspect.Inspector.
func (a *Adapter) InteractiveNodes() ([]element.NodeRef, error) {
	refs := make([]element.NodeRef, 0, len(a.order))
	for _, key := range a.order {
		refs = append(refs, nodeRef(key))
	}
	return refs, nil
}

// Simulate implements inspect.Inspector. The node is cloned, parked
// off-screen, snapshotted, triggered, re-snapshotted, and removed. The
// finally block guarantees clone release on every exit path.
func (a *Adapter) Simulate(ref element.NodeRef, trigger inspect.Trigger, props []string) (inspect.Simulation, error) {
	n, err := a.resolve(ref)
	if err != nil {
		return inspect.Simulation{}, err
	}

	obj, err := n.Eval(`(trigger, props) => {
		const clone = this.cloneNode(true);
		clone.style.position = "absolute";
		clone.style.left = "-9999px";
		clone.style.top = "-9999px";
		document.body.appendChild(clone);
		try {
			const snap = () => {
				const style = getComputedStyle(clone);
				const out = {};
				for (const p of props) out[p] = style.getPropertyValue(p);
				return out;
			};
			const before = snap();
			if (trigger === "hover") {
				clone.classList.add("hover");
				clone.dispatchEvent(new MouseEvent("mouseover", {bubbles: true}));
			} else if (trigger === "focus") {
				if (!clone.hasAttribute("tabindex")) clone.setAttribute("tabindex", "-1");
				clone.focus();
			} else {
				throw new Error("unknown trigger: " + trigger);
			}
			const after = snap();
			return {before: before, after: after};
		} finally {
			clone.remove();
		}
	}`, string(trigger), props)
	if err != nil {
		return inspect.Simulation{}, inspect.NewSimulationFailed(ref.NodeKey(),
			fmt.Errorf("clone simulation for %s: %w", trigger, err))
	}

	sim := inspect.Simulation{Before: inspect.Styles{}, After: inspect.Styles{}}
	for prop, val := range obj.Value.Get("before").Map() {
		sim.Before[prop] = val.Str()
	}
	for prop, val := range obj.Value.Get("after").Map() {
		sim.After[prop] = val.Str()
	}
	return sim, nil
}
