package testutil

import (
	"github.com/auditkit/navaudit/internal/element"
)

// NavElement builds a NavigationElement bound to a fake node. The element
// inherits the node's rect when one was configured; visibility and
// interactivity default to true, matching the common extraction output.
func NavElement(id string, typ element.ElementType, node *FakeNode) element.NavigationElement {
	el := element.NavigationElement{
		ID:            id,
		Type:          typ,
		Selector:      "#" + id,
		IsInteractive: true,
		IsVisible:     true,
		Node:          node,
	}
	if node != nil {
		if node.hasRect {
			r := node.rect
			el.Bounds = &r
		}
		if v, ok := node.attrs["aria-label"]; ok {
			el.AriaLabel = v
		}
		if v, ok := node.attrs["role"]; ok {
			el.Role = v
		}
		if v, ok := node.attrs["href"]; ok {
			el.Destination = v
		}
	}
	return el
}

// Link builds a link element pointing at dest.
func Link(id, dest string, node *FakeNode) element.NavigationElement {
	el := NavElement(id, element.TypeLink, node)
	el.Destination = dest
	return el
}

// Button builds a button element.
func Button(id string, node *FakeNode) element.NavigationElement {
	return NavElement(id, element.TypeButton, node)
}
