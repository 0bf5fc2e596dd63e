// Package staticdom adapts a parsed HTML document to the inspection
// port. It extracts normalized navigation elements with goquery and
// answers attribute, text, and inline-style queries against the static
// tree.
//
// A static document has no layout engine: bounding rects are
// unavailable unless the markup carries them, and clone simulation
// always fails. Checkers degrade on both, so static audits cover the
// attribute- and evidence-based rules while geometry and simulation
// rules need the live adapter or a recorded snapshot.
package staticdom

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/auditkit/navaudit/internal/element"
)

// interactiveSelector enumerates the nodes treated as interactive
// navigation candidates.
const interactiveSelector = "a, button, input[type='submit'], [role='button'], [role='link'], [role='menuitem'], [onclick], [tabindex]"

// Adapter is the static-document inspection adapter. Read-only after
// construction, safe for concurrent use.
type Adapter struct {
	doc      *goquery.Document
	byKey    map[string]*goquery.Selection
	order    []string
	elements []element.NavigationElement
}

// New builds an adapter over a parsed document, registering every
// interactive node in document order.
func New(doc *goquery.Document) *Adapter {
	a := &Adapter{
		doc:   doc,
		byKey: map[string]*goquery.Selection{},
	}

	doc.Find(interactiveSelector).Each(func(i int, sel *goquery.Selection) {
		key := fmt.Sprintf("node-%04d", i)
		a.byKey[key] = sel
		a.order = append(a.order, key)
		a.elements = append(a.elements, a.extractElement(key, sel))
	})

	return a
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Adapter, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML document: %w", err)
	}
	return New(doc), nil
}

// ParseFile reads and parses an HTML file.
func ParseFile(path string) (*Adapter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening HTML file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Elements returns the extracted navigation elements in document order.
func (a *Adapter) Elements() []element.NavigationElement {
	out := make([]element.NavigationElement, len(a.elements))
	copy(out, a.elements)
	return out
}

// extractElement normalizes one interactive node.
func (a *Adapter) extractElement(key string, sel *goquery.Selection) element.NavigationElement {
	el := element.NavigationElement{
		ID:            sel.AttrOr("id", key),
		Type:          classify(sel),
		Destination:   strings.TrimSpace(sel.AttrOr("href", "")),
		Handler:       strings.TrimSpace(sel.AttrOr("onclick", "")),
		Role:          sel.AttrOr("role", ""),
		AriaLabel:     sel.AttrOr("aria-label", ""),
		IsInteractive: true,
		IsVisible:     isStaticallyVisible(sel),
		Node:          nodeRef(key),
	}

	if id, ok := sel.Attr("id"); ok {
		el.Selector = "#" + id
	} else {
		el.Selector = buildSelector(sel)
	}
	return el
}

// classify maps a node to its element type.
func classify(sel *goquery.Selection) element.ElementType {
	tag := goquery.NodeName(sel)
	role := sel.AttrOr("role", "")

	switch {
	case role == "menuitem":
		return element.TypeMenuItem
	case tag == "input" && sel.AttrOr("type", "") == "submit":
		return element.TypeFormSubmit
	case tag == "button" && sel.AttrOr("type", "") == "submit":
		return element.TypeFormSubmit
	case tag == "button" || role == "button":
		return element.TypeButton
	case tag == "a" || role == "link":
		return element.TypeLink
	default:
		return element.TypeButton
	}
}

// isStaticallyVisible applies the visibility evidence available without
// layout: the hidden attribute and inline display/visibility styles.
func isStaticallyVisible(sel *goquery.Selection) bool {
	if _, hidden := sel.Attr("hidden"); hidden {
		return false
	}
	styles := parseInlineStyle(sel.AttrOr("style", ""))
	return styles["display"] != "none" && styles["visibility"] != "hidden"
}

// buildSelector derives a best-effort selector for nodes without an id.
func buildSelector(sel *goquery.Selection) string {
	tag := goquery.NodeName(sel)
	if class, ok := sel.Attr("class"); ok {
		if fields := strings.Fields(class); len(fields) > 0 {
			return tag + "." + fields[0]
		}
	}
	return tag
}

// parseInlineStyle splits a style attribute into a property map.
func parseInlineStyle(style string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop != "" && val != "" {
			out[prop] = val
		}
	}
	return out
}

// nodeRef is the NodeRef implementation for static nodes.
type nodeRef string

func (r nodeRef) NodeKey() string { return string(r) }
