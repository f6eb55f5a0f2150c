package core

import (
	"github.com/go-drift/vdom/pkg/equal"
	"github.com/go-drift/vdom/pkg/path"
	"github.com/go-drift/vdom/pkg/surface"
)

// reconciler diffs virtual nodes against the instance arena and emits the
// resulting mutations to the surface.
type reconciler struct {
	surf  surface.Surface
	arena *arena
	hooks *RenderContext
}

// reconcile brings the instance prev (or nothing) in line with next (or
// nothing) at path p under the surface handle parent.
func (r *reconciler) reconcile(parent surface.Handle, prev InstanceID, next *Node, p path.Path) InstanceID {
	if next == nil {
		if prev != 0 {
			r.unmount(parent, prev)
		}
		return 0
	}
	if prev == 0 {
		return r.mount(parent, next, p)
	}
	inst := r.arena.get(prev)
	if !inst.node.Type.Equal(next.Type) || inst.key != next.Key {
		r.unmount(parent, prev)
		return r.mount(parent, next, p)
	}
	return r.update(parent, prev, next)
}

func (r *reconciler) mount(parent surface.Handle, n *Node, p path.Path) InstanceID {
	switch n.Type.Kind() {
	case KindText:
		h := r.surf.CreateText(n.Text)
		r.surf.AppendChild(parent, h)
		return r.arena.alloc(&instance{kind: KindText, handle: h, node: n, key: n.Key, path: p})

	case KindFragment:
		id := r.arena.alloc(&instance{kind: KindFragment, node: n, key: n.Key, path: p})
		children := r.reconcileChildren(parent, nil, n.Children, p, false)
		inst := r.arena.get(id)
		inst.children = children
		inst.first = r.firstHandleOf(children...)
		return id

	case KindComponent:
		id := r.arena.alloc(&instance{kind: KindComponent, node: n, key: n.Key, path: p})
		r.renderComponent(parent, id, n)
		return id

	case KindHost:
		h := r.surf.CreateElement(n.Type.Tag())
		r.surf.ApplyAttributes(h, n.Props, nil)
		r.surf.AppendChild(parent, h)
		id := r.arena.alloc(&instance{kind: KindHost, handle: h, node: n, key: n.Key, path: p})
		children := r.reconcileChildren(h, nil, n.Children, p, true)
		r.arena.get(id).children = children
		return id
	}
	panic("core: unknown node kind " + n.Type.Kind().String())
}

func (r *reconciler) update(parent surface.Handle, id InstanceID, n *Node) InstanceID {
	inst := r.arena.get(id)
	prevNode := inst.node
	inst.node = n

	switch inst.kind {
	case KindText:
		if prevNode.Text != n.Text {
			r.surf.SetText(inst.handle, n.Text)
		}

	case KindFragment:
		children := r.reconcileChildren(parent, inst.children, n.Children, inst.path, false)
		inst = r.arena.get(id)
		inst.children = children
		inst.first = r.firstHandleOf(children...)

	case KindComponent:
		r.renderComponent(parent, id, n)

	case KindHost:
		if !equal.Shallow(n.Props, prevNode.Props) {
			r.surf.ApplyAttributes(inst.handle, n.Props, prevNode.Props)
		}
		children := r.reconcileChildren(inst.handle, inst.children, n.Children, inst.path, true)
		r.arena.get(id).children = children
	}
	return id
}

// renderComponent invokes the component of instance id and reconciles its
// single rendered child.
func (r *reconciler) renderComponent(parent surface.Handle, id InstanceID, n *Node) {
	p := r.arena.get(id).path
	rendered := r.hooks.render(n, p)

	var prevChild InstanceID
	if children := r.arena.get(id).children; len(children) > 0 {
		prevChild = children[0]
	}

	var childPath path.Path
	if rendered != nil {
		childPath = path.Child(p, rendered.Key, 0, rendered.Type.Token())
	}
	child := r.reconcile(parent, prevChild, rendered, childPath)

	inst := r.arena.get(id)
	inst.children = inst.children[:0]
	if child != 0 {
		inst.children = append(inst.children, child)
	}
	inst.first = r.firstHandleOf(child)
}

// unmount detaches the top-level handles of id from parent and frees its
// subtree. Hook slots of the subtree are retired so a mount reusing one of
// its paths starts fresh; their cleanups run at the end of the pass.
func (r *reconciler) unmount(parent surface.Handle, id InstanceID) {
	r.retire(id)
	r.detach(parent, id)
}

func (r *reconciler) retire(id InstanceID) {
	var paths []path.Path
	r.arena.walk(id, func(_ InstanceID, inst *instance) {
		if inst.kind == KindComponent {
			paths = append(paths, inst.path)
		}
	})
	r.hooks.retire(paths)
}

func (r *reconciler) detach(parent surface.Handle, id InstanceID) {
	for _, h := range r.handlesOf(id) {
		r.surf.RemoveChild(parent, h)
	}
	r.arena.release(id)
}

// handlesOf returns the top-level surface handles of id in order.
func (r *reconciler) handlesOf(id InstanceID) []surface.Handle {
	var out []surface.Handle
	var collect func(InstanceID)
	collect = func(id InstanceID) {
		inst := r.arena.get(id)
		if inst == nil {
			return
		}
		switch inst.kind {
		case KindText, KindHost:
			out = append(out, inst.handle)
		default:
			for _, c := range inst.children {
				collect(c)
			}
		}
	}
	collect(id)
	return out
}

// firstHandleOf returns the first handle found among ids, using the cached
// first handle of fragments and components.
func (r *reconciler) firstHandleOf(ids ...InstanceID) surface.Handle {
	for _, id := range ids {
		inst := r.arena.get(id)
		if inst == nil {
			continue
		}
		switch inst.kind {
		case KindText, KindHost:
			return inst.handle
		default:
			if inst.first != nil {
				return inst.first
			}
		}
	}
	return nil
}
