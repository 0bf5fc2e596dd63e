package staticdom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

func (a *Adapter) resolve(ref element.NodeRef) (*goquery.Selection, error) {
	if ref == nil {
		return nil, inspect.NewNodeNotFound("")
	}
	sel, ok := a.byKey[ref.NodeKey()]
	if !ok {
		return nil, inspect.NewNodeNotFound(ref.NodeKey())
	}
	return sel, nil
}

// TagName implements inspect.Inspector.
func (a *Adapter) TagName(ref element.NodeRef) string {
	sel, err := a.resolve(ref)
	if err != nil {
		return ""
	}
	return goquery.NodeName(sel)
}

// Attribute implements inspect.Inspector.
func (a *Adapter) Attribute(ref element.NodeRef, name string) (string, bool) {
	sel, err := a.resolve(ref)
	if err != nil {
		return "", false
	}
	return sel.Attr(name)
}

// TextContent implements inspect.Inspector.
func (a *Adapter) TextContent(ref element.NodeRef) string {
	sel, err := a.resolve(ref)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

// ReferencedText implements inspect.Inspector.
func (a *Adapter) ReferencedText(id string) string {
	return strings.TrimSpace(a.doc.Find(fmt.Sprintf("[id=%q]", id)).First().Text())
}

// NestedImageAlt implements inspect.Inspector.
func (a *Adapter) NestedImageAlt(ref element.NodeRef) (string, bool) {
	sel, err := a.resolve(ref)
	if err != nil {
		return "", false
	}
	img := sel.Find("img[alt]").First()
	if img.Length() == 0 {
		return "", false
	}
	return img.AttrOr("alt", ""), true
}

// HasDescendant implements inspect.Inspector.
func (a *Adapter) HasDescendant(ref element.NodeRef, selector string) bool {
	sel, err := a.resolve(ref)
	if err != nil {
		return false
	}
	return sel.Find(selector).Length() > 0
}

// AncestorHasAttribute implements inspect.Inspector.
func (a *Adapter) AncestorHasAttribute(ref element.NodeRef, names ...string) bool {
	sel, err := a.resolve(ref)
	if err != nil {
		return false
	}
	found := false
	sel.Parents().EachWithBreak(func(i int, parent *goquery.Selection) bool {
		for _, name := range names {
			if _, ok := parent.Attr(name); ok {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// ComputedStyle implements inspect.Inspector over inline styles: the
// static tree carries no stylesheet cascade, so only the style
// attribute is visible here.
func (a *Adapter) ComputedStyle(ref element.NodeRef, props ...string) (inspect.Styles, error) {
	sel, err := a.resolve(ref)
	if err != nil {
		return nil, err
	}

	inline := parseInlineStyle(sel.AttrOr("style", ""))
	out := inspect.Styles{}
	if len(props) == 0 {
		for p, v := range inline {
			out[p] = v
		}
		return out, nil
	}
	for _, p := range props {
		if v, ok := inline[p]; ok {
			out[p] = v
		}
	}
	return out, nil
}

// BoundingRect implements inspect.Inspector. A static document has no
// layout, so geometry is always unavailable.
func (a *Adapter) BoundingRect(ref element.NodeRef) (element.Rect, error) {
	if _, err := a.resolve(ref); err != nil {
		return element.Rect{}, err
	}
	return element.Rect{}, &inspect.InspectError{
		Code:    inspect.ErrCodeStyleUnavailable,
		Message: "static document has no layout geometry",
		NodeKey: ref.NodeKey(),
	}
}

// InteractiveNodes implements inspect.Inspector.
func (a *Adapter) InteractiveNodes() ([]element.NodeRef, error) {
	refs := make([]element.NodeRef, 0, len(a.order))
	for _, key := range a.order {
		refs = append(refs, nodeRef(key))
	}
	return refs, nil
}

// Simulate implements inspect.Inspector. Static documents cannot apply
// triggers, so every simulation fails and checkers fall back to their
// conservative defaults.
func (a *Adapter) Simulate(ref element.NodeRef, trigger inspect.Trigger, props []string) (inspect.Simulation, error) {
	if _, err := a.resolve(ref); err != nil {
		return inspect.Simulation{}, err
	}
	return inspect.Simulation{}, inspect.NewSimulationFailed(ref.NodeKey(),
		fmt.Errorf("static document cannot simulate %s", trigger))
}
