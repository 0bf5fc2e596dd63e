package staticdom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditkit/navaudit/internal/access"
	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
	"github.com/auditkit/navaudit/internal/rbac"
)

const navPage = `<!DOCTYPE html>
<html>
<body>
  <nav data-protected="true">
    <a id="home" href="/">Home</a>
    <a id="admin" href="/admin/users" aria-label="Admin user management"
       data-permissions="manage_users" class="admin-nav role-admin">Admin</a>
    <button id="save" type="submit">Save</button>
    <div id="menu" role="menuitem" tabindex="0" aria-labelledby="menu-label">
      <img src="gear.png" alt="Settings">
    </div>
    <a id="ghost" href="/hidden" style="display: none">Hidden</a>
    <span id="fake" onclick="go()" style="cursor: pointer">Go</span>
  </nav>
  <p id="menu-label">Open settings menu</p>
</body>
</html>`

func parseFixture(t *testing.T) *Adapter {
	t.Helper()
	a, err := Parse(strings.NewReader(navPage))
	require.NoError(t, err)
	return a
}

func TestParse_ExtractsElements(t *testing.T) {
	a := parseFixture(t)

	els := a.Elements()
	require.Len(t, els, 6)

	byID := map[string]element.NavigationElement{}
	for _, el := range els {
		byID[el.ID] = el
	}

	home := byID["home"]
	assert.Equal(t, element.TypeLink, home.Type)
	assert.Equal(t, "#home", home.Selector)
	assert.Equal(t, "/", home.Destination)
	assert.True(t, home.IsVisible)

	admin := byID["admin"]
	assert.Equal(t, "Admin user management", admin.AriaLabel)
	assert.Equal(t, "/admin/users", admin.Destination)

	save := byID["save"]
	assert.Equal(t, element.TypeFormSubmit, save.Type)

	menu := byID["menu"]
	assert.Equal(t, element.TypeMenuItem, menu.Type)
	assert.Equal(t, "menuitem", menu.Role)

	ghost := byID["ghost"]
	assert.False(t, ghost.IsVisible, "inline display:none")

	fake := byID["fake"]
	assert.Equal(t, "go()", fake.Handler)
}

func TestParse_DocumentOrderIsStable(t *testing.T) {
	a := parseFixture(t)

	var ids []string
	for _, el := range a.Elements() {
		ids = append(ids, el.ID)
	}
	assert.Equal(t, []string{"home", "admin", "save", "menu", "ghost", "fake"}, ids)

	refs, err := a.InteractiveNodes()
	require.NoError(t, err)
	assert.Len(t, refs, 6)
}

func TestAdapter_InspectorQueries(t *testing.T) {
	a := parseFixture(t)
	els := a.Elements()
	byID := map[string]element.NavigationElement{}
	for _, el := range els {
		byID[el.ID] = el
	}

	t.Run("tag and attribute", func(t *testing.T) {
		assert.Equal(t, "a", a.TagName(byID["home"].Node))
		v, ok := a.Attribute(byID["admin"].Node, "data-permissions")
		assert.True(t, ok)
		assert.Equal(t, "manage_users", v)
	})

	t.Run("text content", func(t *testing.T) {
		assert.Equal(t, "Home", a.TextContent(byID["home"].Node))
	})

	t.Run("referenced text resolves aria-labelledby targets", func(t *testing.T) {
		assert.Equal(t, "Open settings menu", a.ReferencedText("menu-label"))
		assert.Equal(t, "", a.ReferencedText("nope"))
	})

	t.Run("nested image alt", func(t *testing.T) {
		alt, ok := a.NestedImageAlt(byID["menu"].Node)
		assert.True(t, ok)
		assert.Equal(t, "Settings", alt)

		_, ok = a.NestedImageAlt(byID["home"].Node)
		assert.False(t, ok)
	})

	t.Run("descendant lookup", func(t *testing.T) {
		assert.True(t, a.HasDescendant(byID["menu"].Node, "img"))
		assert.False(t, a.HasDescendant(byID["home"].Node, ".spinner"))
	})

	t.Run("ancestor attribute", func(t *testing.T) {
		assert.True(t, a.AncestorHasAttribute(byID["admin"].Node, "data-protected"))
		assert.False(t, a.AncestorHasAttribute(byID["admin"].Node, "data-nope"))
	})

	t.Run("inline styles only", func(t *testing.T) {
		styles, err := a.ComputedStyle(byID["fake"].Node, "cursor")
		require.NoError(t, err)
		assert.Equal(t, "pointer", styles.Get("cursor"))

		styles, err = a.ComputedStyle(byID["home"].Node, "cursor")
		require.NoError(t, err)
		assert.Equal(t, "", styles.Get("cursor"))
	})

	t.Run("no layout geometry", func(t *testing.T) {
		_, err := a.BoundingRect(byID["home"].Node)
		var ierr *inspect.InspectError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, inspect.ErrCodeStyleUnavailable, ierr.Code)
	})

	t.Run("simulation always fails", func(t *testing.T) {
		_, err := a.Simulate(byID["home"].Node, inspect.TriggerHover, inspect.SimulationProps)
		assert.True(t, inspect.IsSimulationFailed(err))
	})

	t.Run("unresolved ref", func(t *testing.T) {
		assert.Equal(t, "", a.TagName(nodeRef("ghost-key")))
		_, err := a.ComputedStyle(nodeRef("ghost-key"))
		assert.True(t, inspect.IsNodeNotFound(err))
	})
}

// The static adapter feeds the attribute-based rules end to end.
func TestStaticAuditFlow(t *testing.T) {
	a := parseFixture(t)
	els := a.Elements()

	t.Run("aria validation", func(t *testing.T) {
		checker := access.NewChecker(a)
		results := checker.ValidateARIALabels(els)
		require.Len(t, results, 6)

		byID := map[string][]string{}
		for _, r := range results {
			byID[r.Element.ID] = r.Violations
		}
		assert.Empty(t, byID["home"])
		assert.Empty(t, byID["menu"], "aria-labelledby resolves through the document")
		assert.Contains(t, byID["fake"], "Non-semantic container used interactively without a role")
		assert.Contains(t, byID["fake"], "Element is not keyboard accessible")
	})

	t.Run("permission inference", func(t *testing.T) {
		tester := rbac.NewTester(a)
		var admin element.NavigationElement
		for _, el := range els {
			if el.ID == "admin" {
				admin = el
			}
		}
		assert.Equal(t, []string{"manage_users", "manage_system"}, tester.RequiredPermissions(admin))
	})
}
