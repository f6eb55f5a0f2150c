package core

import (
	"strings"

	"github.com/go-drift/vdom/pkg/path"
	"github.com/go-drift/vdom/pkg/surface"
)

// reconcileChildren diffs an ordered child list.
//
// Previous children are split into a key index and an unkeyed list. Each next
// child takes the previous child with the same key, or, when unkeyed, the
// first unused unkeyed child of the same type. A matched child whose path
// differs from the path its new position yields is relocated together with
// its hook state before anything is rendered. Unmatched previous children are
// unmounted once the new list is built.
//
// When place is set the surface order of the result is fixed up afterwards;
// fragments leave that to the nearest enclosing element so their handles are
// placed relative to their siblings.
func (r *reconciler) reconcileChildren(parent surface.Handle, prev []InstanceID, next []*Node, parentPath path.Path, place bool) []InstanceID {
	keyed := make(map[string]InstanceID)
	var unkeyed, leftovers []InstanceID
	for _, id := range prev {
		inst := r.arena.get(id)
		if inst == nil {
			continue
		}
		if inst.key == "" {
			unkeyed = append(unkeyed, id)
			continue
		}
		if dup, ok := keyed[inst.key]; ok {
			leftovers = append(leftovers, dup)
		}
		keyed[inst.key] = id
	}

	matched := make([]InstanceID, len(next))
	paths := make([]path.Path, len(next))
	var moves []rename
	for i, child := range next {
		if child == nil {
			continue
		}
		var m InstanceID
		if child.Key != "" {
			if id, ok := keyed[child.Key]; ok {
				m = id
				delete(keyed, child.Key)
			}
		} else {
			for j, id := range unkeyed {
				if r.arena.get(id).node.Type.Equal(child.Type) {
					m = id
					unkeyed = append(unkeyed[:j], unkeyed[j+1:]...)
					break
				}
			}
		}

		desired := path.Child(parentPath, child.Key, i, child.Type.Token())
		paths[i] = desired
		matched[i] = m
		if m == 0 {
			continue
		}
		inst := r.arena.get(m)
		if inst.path != desired && inst.node.Type.Equal(child.Type) {
			moves = append(moves, rename{id: m, from: inst.path, to: desired})
		}
	}

	for _, id := range prev {
		inst := r.arena.get(id)
		if inst == nil || inst.key == "" {
			continue
		}
		if unused, ok := keyed[inst.key]; ok && unused == id {
			leftovers = append(leftovers, id)
		}
	}
	leftovers = append(leftovers, unkeyed...)
	for _, id := range leftovers {
		r.retire(id)
	}
	r.relocate(moves)

	result := make([]InstanceID, 0, len(next))
	for i, child := range next {
		if child == nil {
			continue
		}
		if id := r.reconcile(parent, matched[i], child, paths[i]); id != 0 {
			result = append(result, id)
		}
	}

	for _, id := range leftovers {
		r.detach(parent, id)
	}

	if place {
		r.place(parent, result, nil)
	}
	return result
}

// relocate moves matched instances, their descendants and their hook state
// to new paths as one batch.
func (r *reconciler) relocate(moves []rename) {
	if len(moves) == 0 {
		return
	}
	var batch []rename
	hookMoves := make(map[path.Path]path.Path)
	for _, m := range moves {
		prefix := string(m.from)
		r.arena.walk(m.id, func(id InstanceID, inst *instance) {
			to := path.Path(string(m.to) + strings.TrimPrefix(string(inst.path), prefix))
			batch = append(batch, rename{id: id, from: inst.path, to: to})
			hookMoves[inst.path] = to
		})
	}
	r.arena.rename(batch)
	r.hooks.relocate(hookMoves)
}

// place walks ids back to front and moves every child whose handles are not
// already contiguous and directly before the running anchor. The anchor starts
// at end (nil means "end of parent") and becomes each child's first handle.
func (r *reconciler) place(parent surface.Handle, ids []InstanceID, end surface.Handle) {
	anchor := end
	for i := len(ids) - 1; i >= 0; i-- {
		handles := r.handlesOf(ids[i])
		if len(handles) == 0 {
			continue
		}
		if !r.inPlace(handles, anchor) {
			for _, h := range handles {
				r.surf.InsertBefore(parent, h, anchor)
			}
		}
		anchor = handles[0]
	}
}

func (r *reconciler) inPlace(handles []surface.Handle, anchor surface.Handle) bool {
	for i, h := range handles {
		want := anchor
		if i+1 < len(handles) {
			want = handles[i+1]
		}
		if r.surf.NextSibling(h) != want {
			return false
		}
	}
	return true
}
