package core

import (
	"sort"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/path"
	"github.com/go-drift/vdom/pkg/scheduler"
)

// hookSlot is the ordered hook storage of one component path. cursor is the
// index the next hook call resolves to.
type hookSlot struct {
	records []hookRecord
	cursor  int
}

// effectTask points at an effect record by path and cursor. It never holds the
// record itself because the slot may be relocated before the task runs.
type effectTask struct {
	path   path.Path
	cursor int
}

// RenderContext is the single-owner session shared by the reconciler and the
// hook engine of one root: hook slots, the visited set of the current pass,
// the stack of components being rendered and the pending effect queue.
//
// RenderContext is NOT thread-safe. All access happens on the root's logical
// thread; use a scheduler.Loop's Submit to reach it from other goroutines.
type RenderContext struct {
	slots   map[path.Path]*hookSlot
	visited mapset.Set[path.Path]
	stack   []path.Path

	queue   []effectTask
	effects *scheduler.Coalescer

	requestRender func()
	tombs         int

	// panicked is the innermost component whose render panicked during the
	// current pass.
	panicked path.Path
}

func newRenderContext(exec scheduler.Executor, requestRender func()) *RenderContext {
	rc := &RenderContext{
		slots:         make(map[path.Path]*hookSlot),
		visited:       mapset.NewThreadUnsafeSet[path.Path](),
		requestRender: requestRender,
	}
	rc.effects = scheduler.NewCoalescer(exec, rc.flushEffects)
	return rc
}

// reset drops all hook state and pending effects without running cleanups.
func (rc *RenderContext) reset() {
	clear(rc.slots)
	rc.visited.Clear()
	rc.stack = rc.stack[:0]
	rc.queue = nil
	rc.panicked = ""
	rc.effects.Cancel()
}

// beginPass clears the per-pass tracking of every hook path.
func (rc *RenderContext) beginPass() {
	rc.visited.Clear()
	rc.panicked = ""
	for _, slot := range rc.slots {
		slot.cursor = 0
	}
}

// currentPath returns the path of the component being rendered, or "".
func (rc *RenderContext) currentPath() path.Path {
	if len(rc.stack) == 0 {
		return ""
	}
	return rc.stack[len(rc.stack)-1]
}

// render invokes the component of n with p pushed on the render stack.
// A panic is not recovered; the path is recorded for PanicPath.
func (rc *RenderContext) render(n *Node, p path.Path) *Node {
	rc.stack = append(rc.stack, p)
	done := false
	defer func() {
		if !done && rc.panicked == "" {
			rc.panicked = p
		}
		rc.stack = rc.stack[:len(rc.stack)-1]
	}()

	rc.visited.Add(p)
	if slot := rc.slots[p]; slot != nil {
		slot.cursor = 0
	}
	out := n.Type.component(BuildContext{rc: rc, path: p, node: n}, n.Props)
	done = true
	return out
}

// nextHook returns the slot of the component ctx belongs to and advances its
// cursor. It panics unless that component is the one currently rendering.
func (ctx BuildContext) nextHook(op string) (*RenderContext, *hookSlot, int) {
	rc := ctx.rc
	if rc == nil || ctx.path == "" || rc.currentPath() != ctx.path {
		panic(errors.New(op, errors.KindNotInRenderContext))
	}
	slot := rc.slots[ctx.path]
	if slot == nil {
		slot = &hookSlot{}
		rc.slots[ctx.path] = slot
	}
	cursor := slot.cursor
	slot.cursor++
	return rc, slot, cursor
}

// relocate moves hook slots, and queued effect tasks pointing at them, from
// old paths to new ones. Every source is detached before any destination is
// written, so a batch may swap paths.
func (rc *RenderContext) relocate(moves map[path.Path]path.Path) {
	if len(moves) == 0 {
		return
	}
	detached := make(map[path.Path]*hookSlot, len(moves))
	for from := range moves {
		if slot, ok := rc.slots[from]; ok {
			detached[from] = slot
			delete(rc.slots, from)
		}
	}
	for from, slot := range detached {
		rc.slots[moves[from]] = slot
	}
	for i := range rc.queue {
		if to, ok := moves[rc.queue[i].path]; ok {
			rc.queue[i].path = to
		}
	}
}

// retire moves the slots at paths out of the way of future mounts. Retired
// slots are never visited, so the next garbage collection runs their
// cleanups and drops them.
func (rc *RenderContext) retire(paths []path.Path) {
	moves := make(map[path.Path]path.Path)
	for _, p := range paths {
		if _, ok := rc.slots[p]; !ok {
			continue
		}
		rc.tombs++
		moves[p] = path.Path(string(p) + "#" + strconv.Itoa(rc.tombs))
	}
	rc.relocate(moves)
}

// CleanupUnusedHooks drops the hook state of every path not visited during
// the last pass. Effect cleanups of dropped slots run first, in path order.
// Queued effect tasks whose slot is gone are discarded.
func (rc *RenderContext) CleanupUnusedHooks() {
	var stale []path.Path
	for p := range rc.slots {
		if !rc.visited.Contains(p) {
			stale = append(stale, p)
		}
	}
	sort.Slice(stale, func(i, j int) bool { return stale[i] < stale[j] })

	for _, p := range stale {
		slot := rc.slots[p]
		for _, rec := range slot.records {
			if eff, ok := rec.(*effectRecord); ok && eff.cleanup != nil {
				cleanup := eff.cleanup
				eff.cleanup = nil
				cleanup()
			}
		}
		delete(rc.slots, p)
	}

	kept := rc.queue[:0]
	for _, task := range rc.queue {
		if _, ok := rc.slots[task.path]; ok {
			kept = append(kept, task)
		}
	}
	rc.queue = kept
}

// BuildContext is handed to a component while it renders. It is only valid
// for the duration of that render; hooks called through a BuildContext
// afterwards panic with errors.ErrNotInRenderContext.
type BuildContext struct {
	rc   *RenderContext
	path path.Path
	node *Node
}

// Path returns the identity of the component being rendered.
func (ctx BuildContext) Path() path.Path { return ctx.path }

// Children returns the children the component was invoked with.
func (ctx BuildContext) Children() []*Node {
	if ctx.node == nil {
		return nil
	}
	return ctx.node.Children
}

// Key returns the key the component was invoked with.
func (ctx BuildContext) Key() string {
	if ctx.node == nil {
		return ""
	}
	return ctx.node.Key
}
