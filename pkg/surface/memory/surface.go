package memory

import (
	"fmt"
	"strings"

	"github.com/go-drift/vdom/pkg/surface"
)

// Stats counts surface mutations.
type Stats struct {
	Elements    int // CreateElement calls
	Texts       int // CreateText calls
	TextUpdates int // SetText calls that changed the payload
	AttrUpdates int // ApplyAttributes calls
	Inserts     int // InsertBefore calls with a non-nil anchor
	Appends     int // AppendChild calls and InsertBefore with a nil anchor
	Moves       int // Inserts and Appends of nodes that were already attached
	Removes     int // RemoveChild calls that detached a node
}

// Creates returns the number of handles created.
func (s Stats) Creates() int { return s.Elements + s.Texts }

// Surface is an in-memory surface.Surface. It is not safe for concurrent use.
type Surface struct {
	stats  Stats
	nextID int
}

var _ surface.Surface = (*Surface)(nil)

// New returns an empty surface.
func New() *Surface {
	return &Surface{}
}

// NewContainer returns a detached element to mount a tree into. Creating a
// container is not counted in Stats.
func (s *Surface) NewContainer() *Node {
	return s.newNode(ElementNode, "#container")
}

// Stats returns the mutation counters.
func (s *Surface) Stats() Stats { return s.stats }

// ResetStats zeroes the mutation counters.
func (s *Surface) ResetStats() { s.stats = Stats{} }

func (s *Surface) newNode(kind NodeKind, tag string) *Node {
	s.nextID++
	return &Node{Kind: kind, Tag: tag, id: s.nextID}
}

func node(h surface.Handle) *Node {
	if h == nil {
		return nil
	}
	n, ok := h.(*Node)
	if !ok {
		panic(fmt.Sprintf("memory: foreign handle %T", h))
	}
	return n
}

// CreateElement implements surface.Surface.
func (s *Surface) CreateElement(tag string) surface.Handle {
	s.stats.Elements++
	return s.newNode(ElementNode, tag)
}

// CreateText implements surface.Surface.
func (s *Surface) CreateText(text string) surface.Handle {
	s.stats.Texts++
	n := s.newNode(TextNode, "")
	n.Text = text
	return n
}

// SetText implements surface.Surface.
func (s *Surface) SetText(h surface.Handle, text string) {
	n := node(h)
	if n.Text == text {
		return
	}
	n.Text = text
	s.stats.TextUpdates++
}

// InsertBefore implements surface.Surface.
func (s *Surface) InsertBefore(parent, child, anchor surface.Handle) {
	p, c, a := node(parent), node(child), node(anchor)
	if a == nil {
		s.AppendChild(parent, child)
		return
	}
	if c == a {
		return
	}
	if a.parent != p {
		panic(fmt.Sprintf("memory: anchor %d is not a child of %d", a.id, p.id))
	}
	s.stats.Inserts++
	if c.parent != nil {
		s.stats.Moves++
		c.parent.detach(c)
	}
	i := p.indexOf(a)
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = c
	c.parent = p
}

// AppendChild implements surface.Surface.
func (s *Surface) AppendChild(parent, child surface.Handle) {
	p, c := node(parent), node(child)
	s.stats.Appends++
	if c.parent != nil {
		s.stats.Moves++
		c.parent.detach(c)
	}
	p.children = append(p.children, c)
	c.parent = p
}

// RemoveChild implements surface.Surface.
func (s *Surface) RemoveChild(parent, child surface.Handle) {
	p, c := node(parent), node(child)
	if c == nil || c.parent != p {
		return
	}
	s.stats.Removes++
	p.detach(c)
}

// NextSibling implements surface.Surface.
func (s *Surface) NextSibling(h surface.Handle) surface.Handle {
	n := node(h)
	if n == nil || n.parent == nil {
		return nil
	}
	siblings := n.parent.children
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(siblings) {
		return nil
	}
	return siblings[i+1]
}

// Dispatch delivers an event to h and then to each of its ancestors that
// has a listener for name, like a bubbling DOM event. A listener may call
// Event.StopPropagation to end the walk. It reports whether any listener ran.
func (s *Surface) Dispatch(h surface.Handle, name string, data any) bool {
	target := node(h)
	name = strings.ToLower(name)
	stopped := false
	ev := Event{Name: name, Target: target, Data: data, stopped: &stopped}
	ran := false
	for n := target; n != nil && !stopped; n = n.parent {
		fn, ok := n.Listeners[name]
		if !ok {
			continue
		}
		ev.Current = n
		fn(ev)
		ran = true
	}
	return ran
}
