// Package snapshot loads recorded page captures from YAML. A snapshot
// carries the normalized element list plus the per-node observations
// (attributes, computed styles, geometry, simulation outcomes) the
// checkers need, so whole audits replay deterministically without a
// renderer.
package snapshot

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/auditkit/navaudit/internal/element"
	"github.com/auditkit/navaudit/internal/inspect"
)

// Snapshot is one recorded page capture.
type Snapshot struct {
	// Name identifies the capture, typically the page or flow recorded.
	Name string `yaml:"name"`

	// Description explains what the capture covers.
	Description string `yaml:"description,omitempty"`

	// Nodes lists the recorded node observations, in document order.
	Nodes []NodeSpec `yaml:"nodes"`

	// Elements lists the normalized navigation elements. Each entry
	// binds to a node by key.
	Elements []ElementSpec `yaml:"elements"`
}

// NodeSpec records everything observed about one rendered node.
type NodeSpec struct {
	Key string `yaml:"key"`
	Tag string `yaml:"tag"`

	Attrs map[string]string `yaml:"attrs,omitempty"`
	Text  string            `yaml:"text,omitempty"`

	// ImageAlt records the alt text of a nested image; nil means no
	// nested image was observed.
	ImageAlt *string `yaml:"image_alt,omitempty"`

	// Descendants lists selectors that matched a descendant at capture
	// time.
	Descendants []string `yaml:"descendants,omitempty"`

	// AncestorAttrs lists attribute names carried by some ancestor.
	AncestorAttrs []string `yaml:"ancestor_attrs,omitempty"`

	Styles map[string]string `yaml:"styles,omitempty"`

	// Rect is the rendered geometry; nil means geometry was unavailable.
	Rect *element.Rect `yaml:"rect,omitempty"`

	// Interactive marks the node for the spacing neighbor scan.
	Interactive bool `yaml:"interactive,omitempty"`

	// Simulations records clone-simulation outcomes observed at capture
	// time, one per trigger.
	Simulations []SimulationSpec `yaml:"simulations,omitempty"`
}

// SimulationSpec is the recorded outcome of one clone simulation.
type SimulationSpec struct {
	// Trigger is "hover" or "focus".
	Trigger string `yaml:"trigger"`

	// After holds the property values observed on the triggered clone.
	// Properties absent here are taken from the node's base styles.
	After map[string]string `yaml:"after"`
}

// ElementSpec is the serialized form of a NavigationElement bound to a
// recorded node.
type ElementSpec struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Selector    string `yaml:"selector,omitempty"`
	Destination string `yaml:"destination,omitempty"`
	Handler     string `yaml:"handler,omitempty"`

	// Node is the key of the NodeSpec this element binds to.
	Node string `yaml:"node"`

	// Interactive and Visible default to true when omitted.
	Interactive *bool `yaml:"interactive,omitempty"`
	Visible     *bool `yaml:"visible,omitempty"`
}

// Load reads and parses a snapshot YAML file. Unknown fields are
// rejected so typos fail loudly instead of silently dropping recorded
// observations.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var snap Snapshot
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot YAML: %w", err)
	}

	if err := validate(&snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return &snap, nil
}

func validate(s *Snapshot) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	nodeKeys := map[string]bool{}
	for i, n := range s.Nodes {
		if n.Key == "" {
			return fmt.Errorf("nodes[%d]: key is required", i)
		}
		if nodeKeys[n.Key] {
			return fmt.Errorf("nodes[%d]: duplicate key %q", i, n.Key)
		}
		nodeKeys[n.Key] = true
		if n.Tag == "" {
			return fmt.Errorf("nodes[%d]: tag is required", i)
		}
		for j, sim := range n.Simulations {
			switch inspect.Trigger(sim.Trigger) {
			case inspect.TriggerHover, inspect.TriggerFocus:
			default:
				return fmt.Errorf("nodes[%d].simulations[%d]: unknown trigger %q", i, j, sim.Trigger)
			}
		}
	}

	elementIDs := map[string]bool{}
	for i, e := range s.Elements {
		if e.ID == "" {
			return fmt.Errorf("elements[%d]: id is required", i)
		}
		if elementIDs[e.ID] {
			return fmt.Errorf("elements[%d]: duplicate id %q", i, e.ID)
		}
		elementIDs[e.ID] = true
		if !element.ValidElementTypes[element.ElementType(e.Type)] {
			return fmt.Errorf("elements[%d]: unknown element type %q", i, e.Type)
		}
		if e.Node == "" {
			return fmt.Errorf("elements[%d]: node key is required", i)
		}
		if !nodeKeys[e.Node] {
			return fmt.Errorf("elements[%d]: unresolved node key %q", i, e.Node)
		}
	}

	return nil
}

// NavigationElements materializes the element list in declaration order.
// Node references resolve against the snapshot's own Inspector.
func (s *Snapshot) NavigationElements() []element.NavigationElement {
	byKey := make(map[string]*NodeSpec, len(s.Nodes))
	for i := range s.Nodes {
		byKey[s.Nodes[i].Key] = &s.Nodes[i]
	}

	out := make([]element.NavigationElement, 0, len(s.Elements))
	for _, spec := range s.Elements {
		node := byKey[spec.Node]

		el := element.NavigationElement{
			ID:            spec.ID,
			Type:          element.ElementType(spec.Type),
			Selector:      spec.Selector,
			Destination:   spec.Destination,
			Handler:       spec.Handler,
			IsInteractive: spec.Interactive == nil || *spec.Interactive,
			IsVisible:     spec.Visible == nil || *spec.Visible,
			Node:          nodeRef(spec.Node),
		}
		if el.Selector == "" {
			el.Selector = "#" + spec.ID
		}
		if node.Rect != nil {
			r := *node.Rect
			el.Bounds = &r
		}
		el.AriaLabel = node.Attrs["aria-label"]
		el.Role = node.Attrs["role"]
		if el.Destination == "" {
			el.Destination = node.Attrs["href"]
		}
		out = append(out, el)
	}
	return out
}

// nodeRef is the NodeRef implementation for recorded nodes: the key
// itself is the handle.
type nodeRef string

func (r nodeRef) NodeKey() string { return string(r) }
