// Package surface defines the rendering-surface collaborator the reconciler
// emits mutations through.
//
// The reconciler never inspects handles; it only creates them, moves them and
// compares them for identity. Implementations decide what an element, a text
// node and an attribute are.
package surface

// Handle is an opaque reference to a surface element or text node.
// Handles must be comparable; the reconciler uses == to test identity.
type Handle any

// Props is the attribute mapping applied to an element handle.
type Props = map[string]any

// Surface is implemented by concrete rendering back ends.
type Surface interface {
	// CreateElement returns a new, detached element handle.
	CreateElement(tag string) Handle
	// CreateText returns a new, detached text handle.
	CreateText(text string) Handle
	// SetText replaces the payload of a text handle.
	SetText(h Handle, text string)
	// ApplyAttributes brings h from prev to props. It must remove attributes
	// and listeners present only in prev, and must be idempotent.
	ApplyAttributes(h Handle, props, prev Props)
	// InsertBefore places child under parent, before anchor. A nil anchor
	// appends. A child that is already attached elsewhere is moved.
	InsertBefore(parent, child, anchor Handle)
	// AppendChild places child as the last child of parent.
	AppendChild(parent, child Handle)
	// RemoveChild detaches child from parent. It is a no-op when child is not
	// a child of parent.
	RemoveChild(parent, child Handle)
	// NextSibling returns the handle following h under its parent, or nil.
	NextSibling(h Handle) Handle
}
