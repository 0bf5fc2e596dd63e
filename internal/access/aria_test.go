package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
	"github.com/auditkit/navaudit/internal/testutil"
)

// focusable configures a node so only the check under test can fail:
// visible focus indicator and a tabindex where needed.
func focusable(n *testutil.FakeNode) *testutil.FakeNode {
	return n.WithStyle("outline", "2px solid blue").
		WithSimulatedChange(inspect.TriggerFocus, inspect.Styles{"outline": "2px solid blue"})
}

func TestAccessibleName_PriorityChain(t *testing.T) {
	testCases := []struct {
		name     string
		setup    func(f *testutil.FakeInspector) *testutil.FakeNode
		expected string
	}{
		{
			"aria-label wins",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "button").WithAttr("aria-label", "Save").WithText("Submit")
			},
			"Save",
		},
		{
			"aria-labelledby resolves referenced text",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				f.Node("label", "span").WithAttr("id", "save-label").WithText("Save changes")
				return f.Node("n", "button").WithAttr("aria-labelledby", "save-label")
			},
			"Save changes",
		},
		{
			"title used when labels absent",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "button").WithAttr("title", "Save")
			},
			"Save",
		},
		{
			"visible text content",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "button").WithText("  Save  ")
			},
			"Save",
		},
		{
			"nested image alt as last resort",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "button").WithImageAlt("Save icon")
			},
			"Save icon",
		},
		{
			"empty chain",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "button")
			},
			"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := testutil.NewFakeInspector()
			n := tc.setup(f)
			c := NewChecker(f)
			assert.Equal(t, tc.expected, c.AccessibleName(testutil.Button("n", n)))
		})
	}
}

func TestValidateARIALabels_MissingName(t *testing.T) {
	f := testutil.NewFakeInspector()
	// A div with role="button", tabindex 0, no label and no text: the
	// accessible-name chain is empty.
	n := focusable(f.Node("n", "div").
		WithAttr("role", "button").
		WithAttr("tabindex", "0"))

	c := NewChecker(f)
	results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})

	require.Len(t, results, 1)
	assert.Contains(t, results[0].Violations, "Missing accessible name")
}

func TestValidateARIALabels_NonSemanticContainerWithoutRole(t *testing.T) {
	f := testutil.NewFakeInspector()
	n := focusable(f.Node("n", "div").WithAttr("tabindex", "0").WithText("Click me"))

	c := NewChecker(f)
	results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})

	require.Len(t, results, 1)
	assert.Contains(t, results[0].Violations,
		"Non-semantic container used interactively without a role")
}

func TestValidateARIALabels_UnknownRole(t *testing.T) {
	f := testutil.NewFakeInspector()
	n := focusable(f.Node("n", "button").WithText("Go").WithAttr("role", "fancy-widget"))

	c := NewChecker(f)
	results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})

	require.Len(t, results, 1)
	assert.Contains(t, results[0].Violations, `Unknown ARIA role: "fancy-widget"`)
}

func TestValidateARIALabels_AriaStates(t *testing.T) {
	testCases := []struct {
		attr  string
		value string
		valid bool
	}{
		{"aria-expanded", "true", true},
		{"aria-expanded", "false", true},
		{"aria-expanded", "yes", false},
		{"aria-pressed", "mixed", true},
		{"aria-pressed", "maybe", false},
		{"aria-selected", "false", true},
		{"aria-selected", "1", false},
	}

	for _, tc := range testCases {
		t.Run(tc.attr+"="+tc.value, func(t *testing.T) {
			f := testutil.NewFakeInspector()
			n := focusable(f.Node("n", "button").WithText("Go").WithAttr(tc.attr, tc.value))

			c := NewChecker(f)
			results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})

			require.Len(t, results, 1)
			if tc.valid {
				assert.Empty(t, results[0].Violations)
			} else {
				require.Len(t, results[0].Violations, 1)
				assert.Contains(t, results[0].Violations[0], "Invalid "+tc.attr)
			}
		})
	}
}

func TestValidateARIALabels_AriaHiddenInteractive(t *testing.T) {
	f := testutil.NewFakeInspector()
	n := focusable(f.Node("n", "button").WithText("Go").WithAttr("aria-hidden", "true"))

	c := NewChecker(f)
	el := testutil.Button("n", n)
	el.IsInteractive = true

	results := c.ValidateARIALabels([]element.NavigationElement{el})
	require.Len(t, results, 1)
	assert.Contains(t, results[0].Violations, "Interactive element hidden from screen readers")

	// Non-interactive elements may be hidden.
	el.IsInteractive = false
	c.ClearResults()
	results = c.ValidateARIALabels([]element.NavigationElement{el})
	require.Len(t, results, 1)
	assert.NotContains(t, results[0].Violations, "Interactive element hidden from screen readers")
}

func TestValidateARIALabels_KeyboardAccess(t *testing.T) {
	t.Run("native tag passes", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := focusable(f.Node("n", "button").WithText("Go"))

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.Empty(t, results[0].Violations)
	})

	t.Run("disabled native tag fails", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := focusable(f.Node("n", "button").WithText("Go").WithAttr("disabled", ""))

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Violations, "Element is disabled and not keyboard accessible")
	})

	t.Run("custom element needs non-negative tabindex", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := focusable(f.Node("n", "div").WithText("Go").WithAttr("role", "button"))

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Violations, "Element is not keyboard accessible")
	})

	t.Run("negative tabindex fails", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := focusable(f.Node("n", "div").WithText("Go").
			WithAttr("role", "button").WithAttr("tabindex", "-1"))

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Violations, "Element is not keyboard accessible")
	})
}

func TestValidateARIALabels_FocusIndicator(t *testing.T) {
	t.Run("no indicator is a violation", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := f.Node("n", "button").WithText("Go").
			WithStyle("outline", "none").
			WithStyle("box-shadow", "none")

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Violations, "No visible focus indicator")
	})

	t.Run("outline on focus passes", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := f.Node("n", "button").WithText("Go").
			WithStyle("outline", "none").
			WithSimulatedChange(inspect.TriggerFocus, inspect.Styles{"outline": "2px solid blue"})

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.NotContains(t, results[0].Violations, "No visible focus indicator")
	})

	t.Run("box-shadow on focus passes", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := f.Node("n", "button").WithText("Go").
			WithStyle("outline", "none").
			WithSimulatedChange(inspect.TriggerFocus, inspect.Styles{"box-shadow": "0 0 0 3px rgba(0,0,255,0.4)"})

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.NotContains(t, results[0].Violations, "No visible focus indicator")
	})

	t.Run("simulation failure degrades without flagging", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := f.Node("n", "button").WithText("Go").
			WithSimulateError(assert.AnError)

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.NotContains(t, results[0].Violations, "No visible focus indicator")
	})
}

func TestValidateARIALabels_ContrastHeuristic(t *testing.T) {
	t.Run("identical colors flagged", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := focusable(f.Node("n", "button").WithText("Go").
			WithStyle("color", "#333").
			WithStyle("background-color", "#333"))

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Recommendations,
			"Possible contrast issue: foreground and background colors are identical")
	})

	t.Run("light text on transparent background flagged", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := focusable(f.Node("n", "button").WithText("Go").
			WithStyle("color", "white").
			WithStyle("background-color", "transparent"))

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.Contains(t, results[0].Recommendations,
			"Possible contrast issue: light text on a transparent background")
	})

	t.Run("distinct colors pass", func(t *testing.T) {
		f := testutil.NewFakeInspector()
		n := focusable(f.Node("n", "button").WithText("Go").
			WithStyle("color", "#333").
			WithStyle("background-color", "#fff"))

		c := NewChecker(f)
		results := c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
		require.Len(t, results, 1)
		assert.Empty(t, results[0].Recommendations)
	})
}

func TestValidateARIALabels_NilNodeDegrades(t *testing.T) {
	f := testutil.NewFakeInspector()
	el := element.NavigationElement{ID: "ghost", Type: element.TypeButton}

	c := NewChecker(f)
	results := c.ValidateARIALabels([]element.NavigationElement{el})

	require.Len(t, results, 1, "same-length output for same-length input")
	assert.Equal(t, []string{"Element could not be analyzed"}, results[0].Violations)
}

func TestReport_UnionsFailingElements(t *testing.T) {
	f := testutil.NewFakeInspector()

	// ok: passes everything.
	ok := focusable(f.Node("ok", "button").WithText("Fine").
		WithRect(element.Rect{X: 0, Y: 0, Width: 48, Height: 48})).Interactive()

	// bad: fails both the size check and the ARIA name check — must be
	// counted once in failedElements.
	bad := f.Node("bad", "button").
		WithRect(element.Rect{X: 200, Y: 200, Width: 20, Height: 20}).
		Interactive()

	c := NewChecker(f)
	report := c.Report([]element.NavigationElement{
		testutil.Button("ok", ok),
		testutil.Button("bad", bad),
	})

	assert.Equal(t, 2, report.Summary.TotalElements)
	assert.Equal(t, 1, report.Summary.FailedElements, "element failing multiple checks counts once")
	assert.Equal(t, 1, report.Summary.PassedElements)
	assert.Equal(t, 1, report.Summary.TouchTargetFail)
	assert.NotZero(t, report.Summary.AriaViolations)
}

func TestClearResults(t *testing.T) {
	f := testutil.NewFakeInspector()
	n := focusable(f.Node("n", "button").WithText("Go"))

	c := NewChecker(f)
	c.ValidateARIALabels([]element.NavigationElement{testutil.Button("n", n)})
	require.NotEmpty(t, c.CachedResults("n"))

	c.ClearResults()
	assert.Empty(t, c.CachedResults("n"))
}
