// Package memory implements surface.Surface as an in-memory node tree.
//
// It stands in for a document object model: elements carry attributes, an
// inline style map and event listeners; text nodes carry a payload. Every
// mutation is counted so tests and tools can assert how much work a
// reconciliation pass performed.
package memory

import (
	"sort"
	"strings"
)

// NodeKind distinguishes element nodes from text nodes.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
)

func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners registered through on<Name> props.
type Event struct {
	Name    string
	Target  *Node // node the event was dispatched to
	Current *Node // node whose listener is running
	Data    any

	stopped *bool
}

// StopPropagation keeps the event from reaching further ancestors.
func (e Event) StopPropagation() {
	if e.stopped != nil {
		*e.stopped = true
	}
}

// Node is one element or text node. Node pointers are the surface handles.
type Node struct {
	Kind      NodeKind
	Tag       string
	Text      string
	Attrs     map[string]string
	Style     map[string]string
	Listeners map[string]func(Event)

	parent   *Node
	children []*Node
	id       int
}

// ID is a creation counter, unique per surface.
func (n *Node) ID() int { return n.id }

// Parent returns the node n is attached to.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of n's child list.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// TextContent concatenates the text of n and all its descendants.
func (n *Node) TextContent() string {
	if n.Kind == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// Walk visits n and its descendants depth-first until visit returns false.
func (n *Node) Walk(visit func(*Node) bool) bool {
	if !visit(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(visit) {
			return false
		}
	}
	return true
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach(child *Node) {
	i := n.indexOf(child)
	if i < 0 {
		return
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.parent = nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
