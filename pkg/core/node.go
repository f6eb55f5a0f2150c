package core

import (
	"fmt"
	"reflect"
	"runtime"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/go-drift/vdom/pkg/equal"
	"github.com/go-drift/vdom/pkg/path"
	"github.com/go-drift/vdom/pkg/surface"
)

// Props is the attribute mapping of a node. For host elements it is handed to
// the surface as is; for components it is the component's input.
type Props = surface.Props

// Component renders props into at most one node. It must call hooks
// unconditionally and in the same order on every render.
type Component func(ctx BuildContext, props Props) *Node

// Kind enumerates the node type variants.
type Kind int

const (
	KindText Kind = iota
	KindFragment
	KindHost
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindFragment:
		return "fragment"
	case KindHost:
		return "host"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Type is the closed variant over text, fragment, host element and component.
// The zero Type is TextType.
type Type struct {
	kind      Kind
	tag       string
	component Component
	fn        uintptr
}

// TextType is the type of text nodes.
var TextType = Type{kind: KindText}

// FragmentType is the type of fragments.
var FragmentType = Type{kind: KindFragment}

// HostType returns the type of a host element with the given tag.
func HostType(tag string) Type {
	return Type{kind: KindHost, tag: tag}
}

// ComponentType returns the type of nodes rendered by c. Two types made from
// the same function are equal.
func ComponentType(c Component) Type {
	if c == nil {
		panic("core: nil component")
	}
	return Type{kind: KindComponent, component: c, fn: reflect.ValueOf(c).Pointer()}
}

// Kind returns the variant.
func (t Type) Kind() Kind { return t.kind }

// Tag returns the element tag of a host type.
func (t Type) Tag() string { return t.tag }

// Equal reports whether t and o describe the same type.
func (t Type) Equal(o Type) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.kind {
	case KindHost:
		return t.tag == o.tag
	case KindComponent:
		return t.fn == o.fn
	default:
		return true
	}
}

// Token is the type's segment in a node path.
func (t Type) Token() string {
	switch t.kind {
	case KindText:
		return path.TextToken
	case KindFragment:
		return path.FragmentToken
	case KindHost:
		return t.tag
	default:
		return componentLabel(t.fn)
	}
}

// Name is a human readable description of t.
func (t Type) Name() string {
	switch t.kind {
	case KindHost:
		return t.tag
	case KindComponent:
		if f := runtime.FuncForPC(t.fn); f != nil {
			return f.Name()
		}
		return "component"
	default:
		return t.kind.String()
	}
}

var componentLabels sync.Map // uintptr -> string

// componentLabel derives a short label that is stable for the lifetime of
// the binary from the component function's symbol name.
func componentLabel(fn uintptr) string {
	if label, ok := componentLabels.Load(fn); ok {
		return label.(string)
	}
	name := strconv.FormatUint(uint64(fn), 16)
	if f := runtime.FuncForPC(fn); f != nil {
		name = f.Name()
	}
	label := "cmp-" + strconv.FormatUint(xxhash.Sum64String(name)&0xffffffff, 16)
	componentLabels.Store(fn, label)
	return label
}

// Node is an immutable description of desired output. Nodes are built fresh
// on every render and must not be mutated after they are handed to the
// runtime.
type Node struct {
	Type     Type
	Key      string
	Props    Props
	Text     string
	Children []*Node
}

// El describes a host element. A "key" entry in props becomes the node key.
func El(tag string, props Props, children ...any) *Node {
	n := &Node{Type: HostType(tag), Children: Children(children...)}
	n.Key, n.Props = splitKey(props)
	return n
}

// C describes a component invocation. A "key" entry in props becomes the node
// key; children are available to the component via BuildContext.Children.
func C(c Component, props Props, children ...any) *Node {
	n := &Node{Type: ComponentType(c), Children: Children(children...)}
	n.Key, n.Props = splitKey(props)
	return n
}

// Fragment groups children without introducing a surface element.
func Fragment(children ...any) *Node {
	return &Node{Type: FragmentType, Children: Children(children...)}
}

// Text describes a text node. Non-string values are formatted with fmt.Sprint.
func Text(v any) *Node {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return &Node{Type: TextType, Text: s}
}

// WithKey returns a copy of n carrying key.
func (n *Node) WithKey(key string) *Node {
	cp := *n
	cp.Key = key
	return &cp
}

// Children normalises child arguments: nested slices are flattened, nil and
// booleans are dropped, strings and numbers become text nodes. Values of any
// other type are dropped.
func Children(children ...any) []*Node {
	if len(children) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(children))
	var add func(v any)
	add = func(v any) {
		if equal.IsEmpty(v) {
			return
		}
		switch c := v.(type) {
		case *Node:
			out = append(out, c)
		case []*Node:
			for _, n := range c {
				add(n)
			}
		case []any:
			for _, n := range c {
				add(n)
			}
		case string:
			out = append(out, Text(c))
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			out = append(out, Text(c))
		case fmt.Stringer:
			out = append(out, Text(c.String()))
		}
	}
	for _, c := range children {
		add(c)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func splitKey(props Props) (string, Props) {
	raw, ok := props["key"]
	if !ok {
		return "", props
	}
	rest := make(Props, len(props)-1)
	for k, v := range props {
		if k != "key" {
			rest[k] = v
		}
	}
	if equal.IsEmpty(raw) {
		return "", rest
	}
	if s, ok := raw.(string); ok {
		return s, rest
	}
	return fmt.Sprint(raw), rest
}
