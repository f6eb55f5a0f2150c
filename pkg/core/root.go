package core

import (
	"github.com/go-drift/vdom/pkg/equal"
	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/path"
	"github.com/go-drift/vdom/pkg/scheduler"
	"github.com/go-drift/vdom/pkg/surface"
)

// Root binds a virtual tree to a surface container.
//
// Root is NOT thread-safe. Mount, Render, Flush and every state setter must
// run on one logical thread; with a scheduler.Loop owned by another goroutine,
// reach the root through Loop.Submit.
type Root struct {
	surf      surface.Surface
	container surface.Handle
	node      *Node
	root      InstanceID

	exec  scheduler.Executor
	loop  *scheduler.Loop // set when the root owns its executor
	owner *BuildOwner
	hooks *RenderContext
	arena *arena
	rec   *reconciler

	onNeedsFrame func()
}

// Option configures a Root.
type Option func(*Root)

// WithExecutor runs render and effect passes on exec instead of a private
// scheduler.Loop. Flush is a no-op for such roots; the host drains exec.
func WithExecutor(exec scheduler.Executor) Option {
	return func(r *Root) {
		r.exec = exec
	}
}

// WithOnNeedsFrame installs a callback invoked when a render pass becomes
// scheduled.
func WithOnNeedsFrame(fn func()) Option {
	return func(r *Root) {
		r.onNeedsFrame = fn
	}
}

// NewRoot creates an unmounted root rendering to surf.
func NewRoot(surf surface.Surface, opts ...Option) *Root {
	r := &Root{surf: surf}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	if r.exec == nil {
		r.loop = scheduler.NewLoop()
		r.exec = r.loop
	}
	r.owner = NewBuildOwner(r.exec, r.renderPass)
	r.owner.OnNeedsFrame = r.onNeedsFrame
	r.hooks = newRenderContext(r.exec, r.owner.ScheduleBuild)
	r.arena = newArena()
	r.rec = &reconciler{surf: surf, arena: r.arena, hooks: r.hooks}
	return r
}

// MountRoot creates a root on surf and mounts node into container.
func MountRoot(surf surface.Surface, node *Node, container surface.Handle, opts ...Option) (*Root, error) {
	r := NewRoot(surf, opts...)
	if err := r.Mount(node, container); err != nil {
		return nil, err
	}
	return r, nil
}

// Mount tears down whatever the root currently shows, clears all hook state,
// pending effects and any scheduled pass, and renders node into container
// synchronously.
// Effect cleanups of the torn down tree run before its state is dropped.
func (r *Root) Mount(node *Node, container surface.Handle) error {
	if equal.IsEmpty(container) || r.surf == nil {
		return errors.New("core.Mount", errors.KindInvalidContainer)
	}
	if node == nil {
		return errors.New("core.Mount", errors.KindNullRoot)
	}

	if r.root != 0 && r.container != nil {
		r.rec.detach(r.container, r.root)
		r.root = 0
	}
	r.hooks.beginPass()
	r.hooks.CleanupUnusedHooks()
	r.hooks.reset()
	r.arena.reset()
	r.owner.CancelBuild()

	r.container = container
	r.node = node
	r.owner.FlushBuild()
	return nil
}

// Render replaces the root node and schedules a pass. A nil node unmounts
// the whole tree on that pass.
func (r *Root) Render(node *Node) {
	r.node = node
	r.owner.ScheduleBuild()
}

// Unmount removes the whole tree synchronously. Effect cleanups run before
// Unmount returns.
func (r *Root) Unmount() {
	r.node = nil
	if r.container == nil {
		return
	}
	r.owner.FlushBuild()
}

// renderPass is one reconciliation of the whole tree.
func (r *Root) renderPass() {
	if r.container == nil {
		return
	}
	r.hooks.beginPass()
	r.root = r.rec.reconcile(r.container, r.root, r.node, path.Root)
	if r.root != 0 {
		r.rec.place(r.container, []InstanceID{r.root}, nil)
	}
	r.hooks.CleanupUnusedHooks()
}

// PanicPath returns the path of the component whose render panicked during
// the last pass, or "" if no component panicked. Panics in effects are not
// attributed to a path.
func (r *Root) PanicPath() path.Path {
	return r.hooks.panicked
}

// Flush runs scheduled render and effect passes until none are left and
// returns the number of tasks run. It only drains the root's private loop.
func (r *Root) Flush() int {
	if r.loop == nil {
		return 0
	}
	return r.loop.Drain()
}

// Passes returns the number of render passes run, including the mount pass.
func (r *Root) Passes() int {
	return r.owner.Passes()
}

// PendingEffects returns the number of effect runs waiting for a flush.
func (r *Root) PendingEffects() int {
	return r.hooks.PendingEffects()
}

// Container returns the handle the tree is mounted into.
func (r *Root) Container() surface.Handle { return r.container }

// Surface returns the surface the root renders to.
func (r *Root) Surface() surface.Surface { return r.surf }

// Lookup returns the instance currently at p.
func (r *Root) Lookup(p path.Path) (InstanceInfo, bool) {
	id, ok := r.arena.byPath[p]
	if !ok {
		return InstanceInfo{}, false
	}
	return r.arena.info(id)
}

// Walk visits every instance, parents first, until visit returns false.
func (r *Root) Walk(visit func(InstanceInfo) bool) {
	stopped := false
	r.arena.walk(r.root, func(id InstanceID, _ *instance) {
		if stopped {
			return
		}
		info, _ := r.arena.info(id)
		if !visit(info) {
			stopped = true
		}
	})
}

// Size returns the number of live instances.
func (r *Root) Size() int { return r.arena.len() }
