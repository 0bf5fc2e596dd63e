package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/testutil"
)

func TestHasRequiredPermissions(t *testing.T) {
	testCases := []struct {
		name     string
		role     element.UserRole
		required []string
		want     bool
	}{
		{
			"wildcard satisfies any set",
			element.UserRole{Name: "super_admin", Permissions: []string{"*"}},
			[]string{PermManageSystem, PermManageUsers, "anything_at_all"},
			true,
		},
		{
			"all required present",
			element.UserRole{Name: "admin", Permissions: []string{PermManageSystem, PermManageUsers}},
			[]string{PermManageSystem, PermManageUsers},
			true,
		},
		{
			"AND not OR: one of two is not enough",
			element.UserRole{Name: "admin", Permissions: []string{PermManageSystem}},
			[]string{PermManageSystem, PermManageUsers},
			false,
		},
		{
			"empty required set always passes",
			element.UserRole{Name: "guest", Permissions: []string{PermViewPublic}},
			nil,
			true,
		},
		{
			"empty role permissions fail nonempty requirement",
			element.UserRole{Name: "nobody"},
			[]string{PermViewPublic},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasRequiredPermissions(tc.role, tc.required))
		})
	}
}

func TestRequiredPermissions_Inference(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(f *testutil.FakeInspector) element.NavigationElement
		want  []string
	}{
		{
			"explicit data-permissions list",
			func(f *testutil.FakeInspector) element.NavigationElement {
				n := f.Node("n", "a").WithAttr("data-permissions", "manage_users, manage_system")
				return testutil.Link("n", "/somewhere", n)
			},
			[]string{PermManageUsers, PermManageSystem},
		},
		{
			"data-role maps through the role table",
			func(f *testutil.FakeInspector) element.NavigationElement {
				n := f.Node("n", "a").WithAttr("data-role", "user")
				return testutil.Link("n", "/somewhere", n)
			},
			[]string{PermViewPublic, PermViewProfile, PermCreateBooking},
		},
		{
			"admin path prefix",
			func(f *testutil.FakeInspector) element.NavigationElement {
				return testutil.Link("n", "/admin/settings", f.Node("n", "a"))
			},
			[]string{PermManageSystem},
		},
		{
			"profile path prefix",
			func(f *testutil.FakeInspector) element.NavigationElement {
				return testutil.Link("n", "/profile", f.Node("n", "a"))
			},
			[]string{PermViewProfile},
		},
		{
			"booking path prefix",
			func(f *testutil.FakeInspector) element.NavigationElement {
				return testutil.Link("n", "/booking/new", f.Node("n", "a"))
			},
			[]string{PermCreateBooking},
		},
		{
			"users and companies map to manage_users",
			func(f *testutil.FakeInspector) element.NavigationElement {
				return testutil.Link("n", "/companies/42", f.Node("n", "a"))
			},
			[]string{PermManageUsers},
		},
		{
			"admin class keyword",
			func(f *testutil.FakeInspector) element.NavigationElement {
				n := f.Node("n", "button").WithAttr("class", "btn admin-panel-toggle")
				return testutil.Button("n", n)
			},
			[]string{PermManageSystem},
		},
		{
			"admin aria keyword",
			func(f *testutil.FakeInspector) element.NavigationElement {
				n := f.Node("n", "button").WithAttr("aria-label", "Open admin tools")
				return testutil.Button("n", n)
			},
			[]string{PermManageSystem},
		},
		{
			"union across sources, deduplicated",
			func(f *testutil.FakeInspector) element.NavigationElement {
				n := f.Node("n", "a").
					WithAttr("class", "admin-link").
					WithAttr("aria-label", "Admin users")
				return testutil.Link("n", "/admin/users", n)
			},
			[]string{PermManageSystem},
		},
		{
			"no signals means public",
			func(f *testutil.FakeInspector) element.NavigationElement {
				return testutil.Link("n", "/about", f.Node("n", "a"))
			},
			nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := testutil.NewFakeInspector()
			el := tc.setup(f)
			tester := NewTester(f)
			assert.Equal(t, tc.want, tester.RequiredPermissions(el))
		})
	}
}

func TestIsElementVisible(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(f *testutil.FakeInspector) *testutil.FakeNode
		want  bool
	}{
		{
			"plainly visible",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "a").
					WithStyle("display", "block").
					WithRect(element.Rect{Width: 100, Height: 40})
			},
			true,
		},
		{
			"display none",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "a").WithStyle("display", "none")
			},
			false,
		},
		{
			"visibility hidden",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "a").WithStyle("visibility", "hidden")
			},
			false,
		},
		{
			"zero opacity",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "a").WithStyle("opacity", "0")
			},
			false,
		},
		{
			"zero-size geometry",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "a").WithRect(element.Rect{Width: 0, Height: 40})
			},
			false,
		},
		{
			"disabled attribute",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "button").
					WithAttr("disabled", "").
					WithRect(element.Rect{Width: 100, Height: 40})
			},
			false,
		},
		{
			"aria-disabled",
			func(f *testutil.FakeInspector) *testutil.FakeNode {
				return f.Node("n", "button").
					WithAttr("aria-disabled", "true").
					WithRect(element.Rect{Width: 100, Height: 40})
			},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := testutil.NewFakeInspector()
			n := tc.setup(f)
			tester := NewTester(f)
			assert.Equal(t, tc.want, tester.IsElementVisible(testutil.NavElement("n", element.TypeLink, n)))
		})
	}
}

func TestTestElementForRole(t *testing.T) {
	f := testutil.NewFakeInspector()
	// Admin link, rendered visible.
	n := f.Node("admin-link", "a").WithRect(element.Rect{Width: 100, Height: 40})
	el := testutil.Link("admin-link", "/admin", n)

	tester := NewTester(f)

	t.Run("guest sees admin link: fail", func(t *testing.T) {
		r := tester.TestElementForRole(el, element.UserRole{Name: "guest", Permissions: []string{PermViewPublic}})
		assert.False(t, r.ShouldBeVisible)
		assert.True(t, r.IsVisible)
		assert.False(t, r.Passed)
	})

	t.Run("admin sees admin link: pass", func(t *testing.T) {
		r := tester.TestElementForRole(el, element.UserRole{Name: "admin", Permissions: []string{PermManageSystem}})
		assert.True(t, r.ShouldBeVisible)
		assert.True(t, r.Passed)
	})

	t.Run("wildcard role always expects visible", func(t *testing.T) {
		r := tester.TestElementForRole(el, element.UserRole{Name: "super_admin", Permissions: []string{"*"}})
		assert.True(t, r.ShouldBeVisible)
		assert.True(t, r.Passed)
	})
}

func TestPublicElementVisibleForEveryRole(t *testing.T) {
	f := testutil.NewFakeInspector()
	n := f.Node("home", "a").WithRect(element.Rect{Width: 80, Height: 40})
	el := testutil.Link("home", "/about", n)

	tester := NewTester(f)
	for _, role := range tester.SupportedRoles() {
		r := tester.TestElementForRole(el, role)
		assert.True(t, r.ShouldBeVisible, "public element should be visible for role %s", role.Name)
		assert.True(t, r.Passed)
	}
}

func TestAddRole_ReplaceByName(t *testing.T) {
	f := testutil.NewFakeInspector()
	tester := NewTester(f)
	before := len(tester.SupportedRoles())

	tester.AddRole(element.UserRole{Name: "admin", Permissions: []string{"custom_only"}})

	roles := tester.SupportedRoles()
	assert.Len(t, roles, before, "replace, not append")
	assert.Equal(t, []string{"custom_only"}, permissionsForRole(roles, "admin"))

	tester.AddRole(element.UserRole{Name: "auditor", Permissions: []string{PermViewPublic}})
	assert.Len(t, tester.SupportedRoles(), before+1)
}

func TestUnknownRoleLookupYieldsEmptySet(t *testing.T) {
	assert.Nil(t, permissionsForRole(DefaultRoles(), "nonexistent"))
}

func TestTestMultipleRoles_CoversMatrix(t *testing.T) {
	f := testutil.NewFakeInspector()
	adminLink := testutil.Link("admin", "/admin", f.Node("admin", "a").WithRect(element.Rect{Width: 100, Height: 40}))
	homeLink := testutil.Link("home", "/about", f.Node("home", "a").WithRect(element.Rect{Width: 100, Height: 40}))

	tester := NewTester(f)
	results := tester.TestMultipleRoles([]element.NavigationElement{adminLink, homeLink})

	require.Len(t, results, 4, "one entry per default role")
	for _, name := range tester.RoleNames() {
		require.Len(t, results[name], 2, "result order matches input order for %s", name)
		assert.Equal(t, "admin", results[name][0].Element.ID)
		assert.Equal(t, "home", results[name][1].Element.ID)
	}
}

func TestReport_DeduplicatesViolations(t *testing.T) {
	f := testutil.NewFakeInspector()
	// Visible admin link fails for guest and user with distinct messages,
	// passes for admin and super_admin.
	adminLink := testutil.Link("admin", "/admin", f.Node("admin", "a").WithRect(element.Rect{Width: 100, Height: 40}))

	tester := NewTester(f)
	report := tester.Report([]element.NavigationElement{adminLink})

	assert.Equal(t, []string{"guest", "user", "admin", "super_admin"}, report.RoleOrder)
	assert.Equal(t, 4, report.Summary.TotalTests)
	assert.Equal(t, 2, report.Summary.FailedTests)
	assert.Equal(t, 2, report.Summary.PassedTests)
	assert.Equal(t, []string{
		`[guest] element "admin" should be hidden but is visible`,
		`[user] element "admin" should be hidden but is visible`,
	}, report.Summary.Violations)
}

func TestFindAccessControlViolations_PerElementView(t *testing.T) {
	f := testutil.NewFakeInspector()
	// Hidden admin link: fails for the roles that SHOULD see it.
	hidden := testutil.Link("admin", "/admin",
		f.Node("admin", "a").WithStyle("display", "none"))

	tester := NewTester(f)
	out := tester.FindAccessControlViolations([]element.NavigationElement{hidden})

	require.Len(t, out, 1)
	require.Len(t, out[0].Violations, 2, "admin and super_admin expected it visible")
	assert.Equal(t, "admin", out[0].Violations[0].Role)
	assert.Equal(t, "super_admin", out[0].Violations[1].Role)
	assert.Contains(t, out[0].Violations[0].Description, "should be visible but is hidden")
}

func TestClearResults(t *testing.T) {
	f := testutil.NewFakeInspector()
	el := testutil.Link("home", "/about", f.Node("home", "a").WithRect(element.Rect{Width: 10, Height: 10}))

	tester := NewTester(f)
	tester.TestElementForRole(el, DefaultRoles()[0])
	require.NotEmpty(t, tester.CachedResults("home"))

	tester.ClearResults()
	assert.Empty(t, tester.CachedResults("home"))
}
