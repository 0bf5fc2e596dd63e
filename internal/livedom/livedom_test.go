package livedom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/auditkit/navaudit/internal/element"
)

// Browser-backed paths are exercised manually; only the pure mapping
// logic is covered here.
func TestClassify(t *testing.T) {
	testCases := []struct {
		name string
		tag  string
		role string
		want element.ElementType
	}{
		{"anchor", "a", "", element.TypeLink},
		{"role link", "span", "link", element.TypeLink},
		{"button tag", "button", "", element.TypeButton},
		{"role button", "div", "button", element.TypeButton},
		{"submit input", "input", "", element.TypeFormSubmit},
		{"menu item", "li", "menuitem", element.TypeMenuItem},
		{"plain handler node", "span", "", element.TypeButton},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classify(tc.tag, tc.role))
		})
	}
}

func TestNodeRefKey(t *testing.T) {
	assert.Equal(t, "node-0007", nodeRef("node-0007").NodeKey())
}
