package element

// ElementType classifies an interactive UI node.
type ElementType string

const (
	TypeLink       ElementType = "link"
	TypeButton     ElementType = "button"
	TypeMenuItem   ElementType = "menu-item"
	TypeFormSubmit ElementType = "form-submit"
)

// ValidElementTypes defines the allowed element type variants.
var ValidElementTypes = map[ElementType]bool{
	TypeLink:       true,
	TypeButton:     true,
	TypeMenuItem:   true,
	TypeFormSubmit: true,
}

// NodeRef is a non-owning reference to a rendered node.
//
// The engine never mutates the node behind a ref. Inspection adapters
// resolve the key back to their own node handle (a live CDP element, a
// parsed HTML node, or a recorded fake). A nil ref means the element has
// no resolvable node; checkers degrade rather than fail.
type NodeRef interface {
	// NodeKey returns a stable identifier for the referenced node,
	// unique within one inspection session.
	NodeKey() string
}

// NavigationElement is the normalized view of one interactive UI node,
// as supplied by an element-extraction adapter.
type NavigationElement struct {
	ID       string      `json:"id" yaml:"id"`
	Type     ElementType `json:"type" yaml:"type"`
	Selector string      `json:"selector" yaml:"selector"`

	// Destination is the navigation target (href or route path), if any.
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`

	// Handler names a click handler detected during extraction, if any.
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty"`

	// Role is the declared ARIA role, if any.
	Role string `json:"role,omitempty" yaml:"role,omitempty"`

	// AriaLabel is the declared aria-label, if any.
	AriaLabel string `json:"aria_label,omitempty" yaml:"aria_label,omitempty"`

	// IsAccessible reports the extraction-time accessibility flag.
	IsAccessible bool `json:"is_accessible" yaml:"is_accessible"`

	// Bounds is the rendered geometry, nil when unknown.
	Bounds *Rect `json:"bounds,omitempty" yaml:"bounds,omitempty"`

	IsInteractive bool `json:"is_interactive" yaml:"is_interactive"`
	IsVisible     bool `json:"is_visible" yaml:"is_visible"`

	// Node is the non-owning reference to the rendered node.
	// Never serialized; adapters rebind it on load.
	Node NodeRef `json:"-" yaml:"-"`
}

// WildcardPermission grants a role every possible permission.
// Permission checks MUST short-circuit to true when a role holds it.
const WildcardPermission = "*"

// UserRole names a role and the permission set it holds.
type UserRole struct {
	Name        string   `json:"name" yaml:"name"`
	Permissions []string `json:"permissions" yaml:"permissions"`
}

// AdminRoute declares a navigable path with its protection contract.
// Paths are prefix-matched. Routes are synthesized heuristically when no
// explicit entry exists for an observed path.
type AdminRoute struct {
	Path                string   `json:"path" yaml:"path"`
	RequiredPermissions []string `json:"required_permissions" yaml:"required_permissions"`
	IsProtected         bool     `json:"is_protected" yaml:"is_protected"`
}
