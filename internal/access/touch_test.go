package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/testutil"
)

func TestCheckTouchTargets_MinimumSize(t *testing.T) {
	f := testutil.NewFakeInspector()

	testCases := []struct {
		name   string
		rect   element.Rect
		meets  bool
	}{
		{"both dimensions at minimum", element.Rect{Width: 44, Height: 44}, true},
		{"both dimensions above minimum", element.Rect{X: 200, Y: 200, Width: 48, Height: 50}, true},
		{"width below minimum", element.Rect{X: 400, Y: 400, Width: 40, Height: 50}, false},
		{"height below minimum", element.Rect{X: 600, Y: 600, Width: 50, Height: 40}, false},
		{"both below minimum", element.Rect{X: 800, Y: 800, Width: 20, Height: 20}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n := f.Node(tc.name, "button").WithRect(tc.rect)
			el := testutil.Button(tc.name, n)

			c := NewChecker(f)
			results := c.CheckTouchTargets([]element.NavigationElement{el})

			require.Len(t, results, 1)
			assert.Equal(t, tc.meets, results[0].MeetsMinimumSize)
		})
	}
}

func TestCheckTouchTargets_OverlappingNeighborsFailBoth(t *testing.T) {
	f := testutil.NewFakeInspector()
	a := f.Node("a", "button").WithRect(element.Rect{X: 0, Y: 0, Width: 50, Height: 50}).Interactive()
	b := f.Node("b", "button").WithRect(element.Rect{X: 40, Y: 40, Width: 50, Height: 50}).Interactive()

	c := NewChecker(f)
	results := c.CheckTouchTargets([]element.NavigationElement{
		testutil.Button("a", a),
		testutil.Button("b", b),
	})

	require.Len(t, results, 2)
	assert.False(t, results[0].HasAdequateSpacing, "overlapping pair fails for a")
	assert.False(t, results[1].HasAdequateSpacing, "overlapping pair fails for b")
}

func TestCheckTouchTargets_BothGapsBelowMinimum(t *testing.T) {
	f := testutil.NewFakeInspector()
	// 4px apart on both axes: inadequate.
	a := f.Node("a", "button").WithRect(element.Rect{X: 0, Y: 0, Width: 44, Height: 44}).Interactive()
	f.Node("b", "button").WithRect(element.Rect{X: 48, Y: 48, Width: 44, Height: 44}).Interactive()

	c := NewChecker(f)
	results := c.CheckTouchTargets([]element.NavigationElement{testutil.Button("a", a)})

	require.Len(t, results, 1)
	assert.False(t, results[0].HasAdequateSpacing)
}

func TestCheckTouchTargets_SingleAxisGapIsFine(t *testing.T) {
	f := testutil.NewFakeInspector()
	// Horizontally adjacent with a 4px gap but vertically aligned rows:
	// vertical gap is large, so spacing is adequate.
	a := f.Node("a", "button").WithRect(element.Rect{X: 0, Y: 0, Width: 44, Height: 44}).Interactive()
	f.Node("b", "button").WithRect(element.Rect{X: 48, Y: 200, Width: 44, Height: 44}).Interactive()

	c := NewChecker(f)
	results := c.CheckTouchTargets([]element.NavigationElement{testutil.Button("a", a)})

	require.Len(t, results, 1)
	assert.True(t, results[0].HasAdequateSpacing)
}

func TestCheckTouchTargets_WellSpacedElementPasses(t *testing.T) {
	f := testutil.NewFakeInspector()
	a := f.Node("a", "button").WithRect(element.Rect{X: 0, Y: 0, Width: 48, Height: 48}).Interactive()
	f.Node("b", "button").WithRect(element.Rect{X: 100, Y: 0, Width: 48, Height: 48}).Interactive()

	c := NewChecker(f)
	results := c.CheckTouchTargets([]element.NavigationElement{testutil.Button("a", a)})

	require.Len(t, results, 1)
	assert.True(t, results[0].MeetsMinimumSize)
	assert.True(t, results[0].HasAdequateSpacing)
}

func TestCheckTouchTargets_UnknownGeometryOmitted(t *testing.T) {
	f := testutil.NewFakeInspector()
	sized := f.Node("sized", "button").WithRect(element.Rect{Width: 48, Height: 48})
	bare := f.Node("bare", "button") // no rect recorded

	c := NewChecker(f)
	results := c.CheckTouchTargets([]element.NavigationElement{
		testutil.Button("sized", sized),
		testutil.Button("bare", bare),
	})

	require.Len(t, results, 1, "element with unknown geometry is omitted, not failed")
	assert.Equal(t, "sized", results[0].Element.ID)
}

func TestCheckTouchTargets_ConfigurableThresholds(t *testing.T) {
	f := testutil.NewFakeInspector()
	n := f.Node("n", "button").WithRect(element.Rect{Width: 30, Height: 30})

	c := NewChecker(f, WithMinTouchTargetSize(24))
	results := c.CheckTouchTargets([]element.NavigationElement{testutil.Button("n", n)})
	require.Len(t, results, 1)
	assert.True(t, results[0].MeetsMinimumSize)

	c.SetMinTouchTargetSize(32)
	results = c.CheckTouchTargets([]element.NavigationElement{testutil.Button("n", n)})
	require.Len(t, results, 1)
	assert.False(t, results[0].MeetsMinimumSize)
}
