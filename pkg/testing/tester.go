package testing

import (
	"errors"
	"testing"

	"github.com/go-drift/vdom/pkg/core"
	vdomerrors "github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/scheduler"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

// DefaultSettleLimit is the task budget PumpAndSettle uses when given zero.
const DefaultSettleLimit = 1000

// ErrSettleTimeout is returned when PumpAndSettle exceeds its task budget.
var ErrSettleTimeout = errors.New("PumpAndSettle exceeded its task budget: tree did not settle")

// Tester mounts component trees on an in-memory surface and drives their
// render and effect passes explicitly.
type Tester struct {
	surf       *memory.Surface
	container  *memory.Node
	loop       *scheduler.Loop
	root       *core.Root
	mounted    bool
	dispatches []func()
}

// NewTester creates a tester with an empty container.
// Call Cleanup() when done, or use NewTesterWithT() instead.
func NewTester() *Tester {
	surf := memory.New()
	loop := scheduler.NewLoop()
	return &Tester{
		surf:      surf,
		container: surf.NewContainer(),
		loop:      loop,
		root:      core.NewRoot(surf, core.WithExecutor(loop)),
	}
}

// NewTesterWithT creates a tester that unmounts its tree via t.Cleanup().
// This is the recommended constructor for tests.
func NewTesterWithT(t *testing.T) *Tester {
	tester := NewTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup unmounts the tree, running every pending effect cleanup.
func (t *Tester) Cleanup() {
	if !t.mounted {
		return
	}
	t.mounted = false
	t.root.Unmount()
}

// Mount (re)mounts node into the container and pumps once. A previous tree
// is torn down first, hook state included.
func (t *Tester) Mount(node *core.Node) error {
	if err := t.guard("vdomtest.Mount", func() error {
		return t.root.Mount(node, t.container)
	}); err != nil {
		return err
	}
	t.mounted = true
	return t.Pump()
}

// Render replaces the root node and pumps once.
func (t *Tester) Render(node *core.Node) error {
	t.root.Render(node)
	return t.Pump()
}

// Pump runs queued dispatches and then every scheduled render and effect
// pass. A panic raised by a component or effect is returned as a
// *errors.PanicError.
func (t *Tester) Pump() error {
	return t.guard("vdomtest.Pump", func() error {
		t.runDispatches()
		t.loop.Drain()
		return nil
	})
}

// PumpAndSettle is like Pump but runs at most limit scheduled tasks. It
// returns ErrSettleTimeout if work is still queued after that.
func (t *Tester) PumpAndSettle(limit int) error {
	if limit <= 0 {
		limit = DefaultSettleLimit
	}
	return t.guard("vdomtest.PumpAndSettle", func() error {
		t.runDispatches()
		for i := 0; i < limit; i++ {
			if !t.loop.Step() {
				return nil
			}
		}
		if t.loop.Pending() > 0 {
			return ErrSettleTimeout
		}
		return nil
	})
}

func (t *Tester) runDispatches() {
	dispatches := t.dispatches
	t.dispatches = nil
	for _, fn := range dispatches {
		fn()
	}
}

// guard runs fn and turns a panic into a *errors.PanicError carrying the
// path of the component that failed, if any.
func (t *Tester) guard(op string, fn func() error) (err error) {
	defer vdomerrors.Catch(op, &err, t.root.PanicPath)
	return fn()
}

// Dispatch queues a callback for the next Pump.
func (t *Tester) Dispatch(fn func()) {
	t.dispatches = append(t.dispatches, fn)
}

// NeedsWork reports whether dispatches or scheduled passes are pending.
func (t *Tester) NeedsWork() bool {
	return len(t.dispatches) > 0 || t.loop.Pending() > 0
}

// Root returns the root under test.
func (t *Tester) Root() *core.Root { return t.root }

// Surface returns the in-memory surface.
func (t *Tester) Surface() *memory.Surface { return t.surf }

// Container returns the node the tree is mounted into.
func (t *Tester) Container() *memory.Node { return t.container }

// HTML serialises the mounted tree.
func (t *Tester) HTML() string { return memory.InnerHTML(t.container) }

// Stats returns the surface mutation counters.
func (t *Tester) Stats() memory.Stats { return t.surf.Stats() }

// Passes returns the number of render passes run so far.
func (t *Tester) Passes() int { return t.root.Passes() }

// Find evaluates a finder against the mounted tree. The container itself is
// never matched.
func (t *Tester) Find(finder Finder) FinderResult {
	var nodes []*memory.Node
	for _, child := range t.container.Children() {
		nodes = append(nodes, finder.Evaluate(child)...)
	}
	return FinderResult{nodes: nodes, finder: finder}
}
