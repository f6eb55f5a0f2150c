package core

import (
	"github.com/go-drift/vdom/pkg/path"
	"github.com/go-drift/vdom/pkg/surface"
)

// InstanceID addresses an instance in the arena. The zero ID means "none".
type InstanceID uint32

// instance is one node of the persisted tree.
//
// Text and host instances own exactly one surface handle. Fragment and
// component instances own none; first caches the first handle among their
// descendants so an ancestor can anchor insertions. A component instance has
// at most one child.
type instance struct {
	kind     Kind
	handle   surface.Handle
	first    surface.Handle
	node     *Node
	children []InstanceID
	key      string
	path     path.Path
}

// arena stores instances by ID and keeps the path -> ID index current.
type arena struct {
	slots  []*instance
	free   []InstanceID
	byPath map[path.Path]InstanceID
}

func newArena() *arena {
	return &arena{
		slots:  []*instance{nil},
		byPath: make(map[path.Path]InstanceID),
	}
}

func (a *arena) alloc(inst *instance) InstanceID {
	var id InstanceID
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[id] = inst
	} else {
		id = InstanceID(len(a.slots))
		a.slots = append(a.slots, inst)
	}
	a.byPath[inst.path] = id
	return id
}

func (a *arena) get(id InstanceID) *instance {
	if id == 0 || int(id) >= len(a.slots) {
		return nil
	}
	return a.slots[id]
}

// release frees id and its whole subtree.
func (a *arena) release(id InstanceID) {
	inst := a.get(id)
	if inst == nil {
		return
	}
	for _, c := range inst.children {
		a.release(c)
	}
	if a.byPath[inst.path] == id {
		delete(a.byPath, inst.path)
	}
	a.slots[id] = nil
	a.free = append(a.free, id)
}

// walk visits id and its descendants, parents first.
func (a *arena) walk(id InstanceID, visit func(InstanceID, *instance)) {
	inst := a.get(id)
	if inst == nil {
		return
	}
	visit(id, inst)
	for _, c := range inst.children {
		a.walk(c, visit)
	}
}

type rename struct {
	id       InstanceID
	from, to path.Path
}

// rename moves a batch of instances to new paths. All old index entries are
// dropped before any new one is written so that paths swapped within one
// batch do not clobber each other.
func (a *arena) rename(batch []rename) {
	for _, r := range batch {
		if a.byPath[r.from] == r.id {
			delete(a.byPath, r.from)
		}
	}
	for _, r := range batch {
		a.slots[r.id].path = r.to
		a.byPath[r.to] = r.id
	}
}

func (a *arena) reset() {
	a.slots = []*instance{nil}
	a.free = nil
	a.byPath = make(map[path.Path]InstanceID)
}

// len returns the number of live instances.
func (a *arena) len() int {
	return len(a.slots) - 1 - len(a.free)
}

// InstanceInfo is a read-only view of one instance.
type InstanceInfo struct {
	ID       InstanceID
	Kind     Kind
	Key      string
	Path     path.Path
	Type     Type
	Handle   surface.Handle // own handle for text/host, first descendant handle otherwise
	Children []path.Path
}

func (a *arena) info(id InstanceID) (InstanceInfo, bool) {
	inst := a.get(id)
	if inst == nil {
		return InstanceInfo{}, false
	}
	info := InstanceInfo{
		ID:   id,
		Kind: inst.kind,
		Key:  inst.key,
		Path: inst.path,
		Type: inst.node.Type,
	}
	switch inst.kind {
	case KindText, KindHost:
		info.Handle = inst.handle
	default:
		info.Handle = inst.first
	}
	for _, c := range inst.children {
		if ci := a.get(c); ci != nil {
			info.Children = append(info.Children, ci.path)
		}
	}
	return info, true
}
