package element

import "math"

// Rect is rendered element geometry in CSS pixels.
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Top returns the top edge coordinate.
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the bottom edge coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Left returns the left edge coordinate.
func (r Rect) Left() float64 { return r.X }

// Right returns the right edge coordinate.
func (r Rect) Right() float64 { return r.X + r.Width }

// IsZero reports whether the rect has no area.
func (r Rect) IsZero() bool { return r.Width == 0 || r.Height == 0 }

// Overlaps reports true rectangle intersection with o.
// Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() &&
		r.Right() > o.Left() &&
		r.Top() < o.Bottom() &&
		r.Bottom() > o.Top()
}

// HorizontalGap returns the smaller horizontal edge distance between the
// two rects: min(|r.right - o.left|, |o.right - r.left|).
func (r Rect) HorizontalGap(o Rect) float64 {
	return math.Min(math.Abs(r.Right()-o.Left()), math.Abs(o.Right()-r.Left()))
}

// VerticalGap returns the smaller vertical edge distance between the two
// rects: min(|r.bottom - o.top|, |o.bottom - r.top|).
func (r Rect) VerticalGap(o Rect) float64 {
	return math.Min(math.Abs(r.Bottom()-o.Top()), math.Abs(o.Bottom()-r.Top()))
}
