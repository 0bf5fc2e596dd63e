package access

import (
	"log/slog"

	"github.com/auditkit/navaudit/internal/element"
)

// CheckTouchTargets evaluates sizing and spacing for every element with
// known geometry. Elements without geometry are logged and omitted; a
// spacing-scan failure degrades to the conservative "adequate spacing"
// default rather than failing the batch.
//
// Output order matches input order.
func (c *Checker) CheckTouchTargets(elements []element.NavigationElement) []element.TouchTarget {
	results := make([]element.TouchTarget, 0, len(elements))

	neighbors, err := c.interactiveRects()
	if err != nil {
		slog.Warn("interactive node scan failed, assuming adequate spacing", "error", err)
		neighbors = nil
	}

	for _, el := range elements {
		rect, ok := c.elementRect(el)
		if !ok {
			slog.Debug("skipping touch target with unknown geometry", "element", el.ID)
			continue
		}

		results = append(results, element.TouchTarget{
			Element:            el,
			Size:               rect,
			MeetsMinimumSize:   rect.Width >= c.minTouchTargetSize && rect.Height >= c.minTouchTargetSize,
			HasAdequateSpacing: c.hasAdequateSpacing(el, rect, neighbors),
		})
	}

	return results
}

// neighborRect pairs an interactive node's key with its geometry.
type neighborRect struct {
	key  string
	rect element.Rect
}

// interactiveRects measures every currently-queryable interactive node in
// the environment, not just the audited list. Nodes that fail to measure
// are skipped.
func (c *Checker) interactiveRects() ([]neighborRect, error) {
	refs, err := c.ins.InteractiveNodes()
	if err != nil {
		return nil, err
	}

	rects := make([]neighborRect, 0, len(refs))
	for _, ref := range refs {
		rect, err := c.ins.BoundingRect(ref)
		if err != nil {
			slog.Debug("neighbor rect unavailable", "node", ref.NodeKey(), "error", err)
			continue
		}
		if rect.IsZero() {
			continue
		}
		rects = append(rects, neighborRect{key: ref.NodeKey(), rect: rect})
	}
	return rects, nil
}

// elementRect resolves geometry from the element record, falling back to
// a live measurement through the port.
func (c *Checker) elementRect(el element.NavigationElement) (element.Rect, bool) {
	if el.Bounds != nil && !el.Bounds.IsZero() {
		return *el.Bounds, true
	}
	if el.Node == nil {
		return element.Rect{}, false
	}
	rect, err := c.ins.BoundingRect(el.Node)
	if err != nil || rect.IsZero() {
		return element.Rect{}, false
	}
	return rect, true
}

// hasAdequateSpacing is false when the element's rectangle overlaps
// another interactive element's rectangle, or when both the horizontal
// and vertical gaps to a neighbor fall below the configured minimum at
// the same time. A gap below the minimum on one axis only is fine:
// elements stacked in a row share an axis by construction.
func (c *Checker) hasAdequateSpacing(el element.NavigationElement, rect element.Rect, neighbors []neighborRect) bool {
	selfKey := ""
	if el.Node != nil {
		selfKey = el.Node.NodeKey()
	}

	for _, n := range neighbors {
		if selfKey != "" && n.key == selfKey {
			continue
		}
		if rect.Overlaps(n.rect) {
			return false
		}
		if rect.HorizontalGap(n.rect) < c.minSpacing && rect.VerticalGap(n.rect) < c.minSpacing {
			return false
		}
	}
	return true
}
