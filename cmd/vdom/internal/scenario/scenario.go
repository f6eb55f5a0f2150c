// Package scenario reads YAML files describing a sequence of host trees and
// turns them into virtual nodes.
//
// A scenario lists frames; each frame is a tree rendered after the previous
// one, so a scenario exercises the reconciler's update path:
//
//	name: swap
//	frames:
//	  - tag: ul
//	    children:
//	      - {tag: li, key: a, text: A}
//	      - {tag: li, key: b, text: B}
//	  - tag: ul
//	    children:
//	      - {tag: li, key: b, text: B}
//	      - {tag: li, key: a, text: A}
//
// A bare scalar is shorthand for a text node.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/vdom/pkg/core"
)

// Scenario is a named sequence of frames.
type Scenario struct {
	Name   string `yaml:"name"`
	Frames []Node `yaml:"frames"`
}

// Node describes one element, text node or fragment.
type Node struct {
	Tag      string            `yaml:"tag,omitempty"`
	Text     *string           `yaml:"text,omitempty"`
	Key      string            `yaml:"key,omitempty"`
	Attrs    map[string]any    `yaml:"attrs,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
	Fragment bool              `yaml:"fragment,omitempty"`
	Children []Node            `yaml:"children,omitempty"`
}

// UnmarshalYAML accepts a mapping or a scalar text shorthand.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		text := value.Value
		*n = Node{Text: &text}
		return nil
	}
	type plain Node
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = Node(p)
	return nil
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid scenario YAML: %w", err)
	}
	if len(s.Frames) == 0 {
		return nil, fmt.Errorf("scenario %q has no frames", s.Name)
	}
	for i := range s.Frames {
		if err := s.Frames[i].validate(fmt.Sprintf("frames[%d]", i)); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (n *Node) validate(at string) error {
	switch {
	case n.Fragment && n.Tag != "":
		return fmt.Errorf("%s: a fragment cannot have a tag", at)
	case n.Fragment && n.Text != nil:
		return fmt.Errorf("%s: a fragment cannot have text, use a child", at)
	case !n.Fragment && n.Tag == "" && n.Text == nil:
		return fmt.Errorf("%s: node needs a tag, text or fragment", at)
	case n.Tag == "" && (len(n.Attrs) > 0 || len(n.Style) > 0):
		return fmt.Errorf("%s: only elements take attrs and style", at)
	case n.Tag == "" && !n.Fragment && len(n.Children) > 0:
		return fmt.Errorf("%s: a text node cannot have children", at)
	}
	for i := range n.Children {
		if err := n.Children[i].validate(fmt.Sprintf("%s.children[%d]", at, i)); err != nil {
			return err
		}
	}
	return nil
}

// Nodes builds the virtual tree of every frame.
func (s *Scenario) Nodes() []*core.Node {
	out := make([]*core.Node, len(s.Frames))
	for i := range s.Frames {
		out[i] = s.Frames[i].Build()
	}
	return out
}

// Build converts n into a virtual node. An element's text, if any, becomes
// its first child.
func (n *Node) Build() *core.Node {
	children := make([]any, 0, len(n.Children)+1)
	if n.Tag != "" && n.Text != nil {
		children = append(children, core.Text(*n.Text))
	}
	for i := range n.Children {
		children = append(children, n.Children[i].Build())
	}

	var out *core.Node
	switch {
	case n.Fragment:
		out = core.Fragment(children...)
	case n.Tag != "":
		out = core.El(n.Tag, n.props(), children...)
	default:
		out = core.Text(*n.Text)
	}
	if n.Key != "" {
		out = out.WithKey(n.Key)
	}
	return out
}

func (n *Node) props() core.Props {
	if len(n.Attrs) == 0 && len(n.Style) == 0 {
		return nil
	}
	props := make(core.Props, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		props[k] = v
	}
	if len(n.Style) > 0 {
		props["style"] = n.Style
	}
	return props
}
