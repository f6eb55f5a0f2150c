package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/path"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

func TestSetterCoalescesIntoOnePass(t *testing.T) {
	p := newProbe()
	r, _, c := mountTest(t, keyedList(p, "a"))
	require.Equal(t, 1, r.Passes())

	set := p.setters["a"]
	set.Set(1)
	set.Set(2)
	set.Update(func(n int) int { return n + 1 })
	assert.Equal(t, 3, set.Value(), "Value sees updates before they render")

	r.Flush()

	assert.Equal(t, 2, r.Passes())
	assert.Equal(t, "<ul><li>a:3</li></ul>", memory.InnerHTML(c))
	assert.Equal(t, 2, p.renders["a"])
}

func TestSetterIgnoresIdenticalValue(t *testing.T) {
	var set *State[float64]
	comp := func(ctx BuildContext, _ Props) *Node {
		v, s := UseState(ctx, math.NaN())
		set = s
		return Text(v)
	}
	r, _, _ := mountTest(t, C(comp, nil))

	set.Set(math.NaN())
	assert.Zero(t, r.Flush(), "NaN is identical to NaN")
	assert.Equal(t, 1, r.Passes())

	set.Set(1.5)
	r.Flush()
	assert.Equal(t, 2, r.Passes())
}

func TestSetterIsStableAcrossRenders(t *testing.T) {
	var seen []*State[string]
	comp := func(ctx BuildContext, props Props) *Node {
		_, s := UseState(ctx, "")
		seen = append(seen, s)
		return Text(props["n"])
	}
	r, _, _ := mountTest(t, C(comp, Props{"n": 1}))
	r.Render(C(comp, Props{"n": 2}))
	r.Flush()

	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1])
}

func TestUseStateFuncInitialisesOnce(t *testing.T) {
	inits := 0
	comp := func(ctx BuildContext, props Props) *Node {
		v, _ := UseStateFunc(ctx, func() []string {
			inits++
			return []string{"x"}
		})
		return Text(len(v))
	}
	r, _, c := mountTest(t, C(comp, Props{"n": 1}))
	r.Render(C(comp, Props{"n": 2}))
	r.Flush()

	assert.Equal(t, 1, inits)
	assert.Equal(t, "1", memory.InnerHTML(c))
}

func TestHookOrderIsStable(t *testing.T) {
	comp := func(ctx BuildContext, props Props) *Node {
		UseState(ctx, 0)
		UseEffect(ctx, func() func() { return nil }, nil)
		UseState(ctx, "s")
		return nil
	}
	r, _, _ := mountTest(t, C(comp, Props{"n": 0}))
	for i := 1; i < 4; i++ {
		r.Render(C(comp, Props{"n": i}))
		r.Flush()
	}

	slot := r.hooks.slots[path.Root]
	require.NotNil(t, slot)
	require.Len(t, slot.records, 3)
	assert.IsType(t, &stateCell{}, slot.records[0])
	assert.IsType(t, &effectRecord{}, slot.records[1])
	assert.IsType(t, &stateCell{}, slot.records[2])
	assert.Equal(t, 3, slot.cursor)
}

func TestEffectsRunAfterPass(t *testing.T) {
	var log []string
	comp := func(ctx BuildContext, _ Props) *Node {
		log = append(log, "render")
		UseEffect(ctx, func() func() {
			log = append(log, "effect")
			return nil
		}, nil)
		return nil
	}
	r, _, _ := mountTest(t, C(comp, nil))

	assert.Equal(t, []string{"render"}, log)
	assert.Equal(t, 1, r.PendingEffects())

	r.Flush()
	assert.Equal(t, []string{"render", "effect"}, log)
	assert.Zero(t, r.PendingEffects())
}

func TestEffectDependencies(t *testing.T) {
	p := newProbe()
	comp := func(ctx BuildContext, props Props) *Node {
		dep := props["dep"]
		UseEffect(ctx, func() func() {
			p.record("run %v", dep)
			return func() { p.record("cleanup %v", dep) }
		}, []any{dep})
		return nil
	}
	r, _, _ := mountTest(t, C(comp, Props{"dep": 1}))
	r.Flush()

	r.Render(C(comp, Props{"dep": 1}))
	r.Flush()
	assert.Equal(t, []string{"run 1"}, p.log, "unchanged deps skip the effect")

	r.Render(C(comp, Props{"dep": 2}))
	r.Flush()
	assert.Equal(t, []string{"run 1", "cleanup 1", "run 2"}, p.log)

	r.Unmount()
	assert.Equal(t, []string{"run 1", "cleanup 1", "run 2", "cleanup 2"}, p.log)
}

func TestEffectReRunsForFreshClosureDependency(t *testing.T) {
	p := newProbe()
	comp := func(ctx BuildContext, props Props) *Node {
		n := props["n"].(int)
		current := func() int { return n }
		UseEffect(ctx, func() func() {
			p.record("run %d", current())
			return nil
		}, []any{current})
		return nil
	}
	r, _, _ := mountTest(t, C(comp, Props{"n": 0}))
	r.Flush()

	r.Render(C(comp, Props{"n": 1}))
	r.Flush()
	assert.Equal(t, []string{"run 0", "run 1"}, p.log, "the effect sees the closure of the latest render")
}

func TestEffectSkipsStableFuncDependency(t *testing.T) {
	p := newProbe()
	stable := func() {}
	comp := func(ctx BuildContext, props Props) *Node {
		UseEffect(ctx, func() func() {
			p.record("run")
			return nil
		}, []any{stable})
		return nil
	}
	r, _, _ := mountTest(t, C(comp, nil))
	r.Flush()

	r.Render(C(comp, nil))
	r.Flush()
	assert.Equal(t, []string{"run"}, p.log)
}

func TestEffectWithNilDepsRunsEveryPass(t *testing.T) {
	runs, cleanups := 0, 0
	comp := func(ctx BuildContext, props Props) *Node {
		UseEffect(ctx, func() func() {
			runs++
			return func() { cleanups++ }
		}, nil)
		return nil
	}
	r, _, _ := mountTest(t, C(comp, Props{"n": 0}))
	r.Flush()
	for i := 1; i <= 3; i++ {
		r.Render(C(comp, Props{"n": i}))
		r.Flush()
	}

	assert.Equal(t, 4, runs)
	assert.Equal(t, 3, cleanups)
}

func TestEffectWithEmptyDepsRunsOnce(t *testing.T) {
	runs, cleanups := 0, 0
	comp := func(ctx BuildContext, props Props) *Node {
		UseEffect(ctx, func() func() {
			runs++
			return func() { cleanups++ }
		}, []any{})
		return nil
	}
	r, _, _ := mountTest(t, C(comp, Props{"n": 0}))
	r.Flush()
	for i := 1; i <= 3; i++ {
		r.Render(C(comp, Props{"n": i}))
		r.Flush()
	}
	assert.Equal(t, 1, runs)
	assert.Zero(t, cleanups)

	r.Unmount()
	assert.Equal(t, 1, cleanups)
}

func TestEffectsRunInQueueOrder(t *testing.T) {
	var log []string
	child := func(ctx BuildContext, _ Props) *Node {
		UseEffect(ctx, func() func() {
			log = append(log, "child")
			return nil
		}, []any{})
		return nil
	}
	parent := func(ctx BuildContext, _ Props) *Node {
		UseEffect(ctx, func() func() {
			log = append(log, "parent")
			return nil
		}, []any{})
		return Fragment(C(child, nil), C(child, Props{"key": "second"}))
	}
	r, _, _ := mountTest(t, C(parent, nil))
	r.Flush()

	assert.Equal(t, []string{"parent", "child", "child"}, log)
}

func TestSetterInsideEffectSchedulesNextPass(t *testing.T) {
	comp := func(ctx BuildContext, _ Props) *Node {
		v, set := UseState(ctx, "loading")
		UseEffect(ctx, func() func() {
			set.Set("ready")
			return nil
		}, []any{})
		return Text(v)
	}
	r, _, c := mountTest(t, C(comp, nil))
	assert.Equal(t, "loading", memory.InnerHTML(c))

	r.Flush()

	assert.Equal(t, "ready", memory.InnerHTML(c))
	assert.Equal(t, 2, r.Passes())
}

func TestUnmountedStateIsCollected(t *testing.T) {
	p := newProbe()
	cleanups := 0
	tracked := func(ctx BuildContext, props Props) *Node {
		UseEffect(ctx, func() func() { return func() { cleanups++ } }, []any{})
		return counter(ctx, props)
	}
	list := func(withX bool) *Node {
		var x any
		if withX {
			x = C(tracked, Props{"key": "x", "name": "x", "probe": p})
		}
		return El("ul", nil, x)
	}
	r, _, c := mountTest(t, list(true))
	r.Flush()
	p.setters["x"].Set(7)
	r.Flush()
	require.Equal(t, "<ul><li>x:7</li></ul>", memory.InnerHTML(c))

	r.Render(list(false))
	r.Flush()
	assert.Equal(t, "<ul></ul>", memory.InnerHTML(c))
	assert.Equal(t, 1, cleanups)
	assert.Empty(t, r.hooks.slots)

	r.Render(list(true))
	r.Flush()
	assert.Equal(t, "<ul><li>x:0</li></ul>", memory.InnerHTML(c), "a remount starts fresh")
	assert.Equal(t, 1, cleanups)
}

func TestReplacementAtSamePathStartsFresh(t *testing.T) {
	cleanups := 0
	first := func(ctx BuildContext, _ Props) *Node {
		v, _ := UseState(ctx, "first")
		UseEffect(ctx, func() func() { return func() { cleanups++ } }, []any{})
		return Text(v)
	}
	second := func(ctx BuildContext, _ Props) *Node {
		v, _ := UseState(ctx, "second")
		return Text(v)
	}
	r, _, c := mountTest(t, C(first, nil))
	r.Flush()

	r.Render(C(second, nil))
	r.Flush()

	assert.Equal(t, "second", memory.InnerHTML(c))
	assert.Equal(t, 1, cleanups)
}

func TestHookOutsideRenderPanics(t *testing.T) {
	assertNotInRender := func(t *testing.T, fn func()) {
		t.Helper()
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a panic")
			err, ok := r.(error)
			require.True(t, ok, "panic value %v is not an error", r)
			assert.ErrorIs(t, err, errors.ErrNotInRenderContext)
		}()
		fn()
	}

	t.Run("zero context", func(t *testing.T) {
		assertNotInRender(t, func() { UseState(BuildContext{}, 0) })
	})

	t.Run("captured context", func(t *testing.T) {
		var captured BuildContext
		comp := func(ctx BuildContext, _ Props) *Node {
			captured = ctx
			return nil
		}
		mountTest(t, C(comp, nil))
		assertNotInRender(t, func() { UseEffect(captured, func() func() { return nil }, nil) })
	})

	t.Run("parent context inside child", func(t *testing.T) {
		var parentCtx BuildContext
		child := func(ctx BuildContext, _ Props) *Node {
			UseState(parentCtx, 0)
			return nil
		}
		parent := func(ctx BuildContext, _ Props) *Node {
			parentCtx = ctx
			return C(child, nil)
		}
		assertNotInRender(t, func() {
			s := memory.New()
			_, _ = MountRoot(s, C(parent, nil), s.NewContainer())
		})
	})
}

func TestRenderContextRelocateSwaps(t *testing.T) {
	rc := newRenderContext(nil, func() {})
	a, b := &hookSlot{}, &hookSlot{}
	rc.slots["/a"], rc.slots["/b"] = a, b
	rc.queue = []effectTask{{path: "/a"}, {path: "/b", cursor: 1}}

	rc.relocate(map[path.Path]path.Path{"/a": "/b", "/b": "/a"})

	assert.Same(t, b, rc.slots["/a"])
	assert.Same(t, a, rc.slots["/b"])
	assert.Equal(t, []effectTask{{path: "/b"}, {path: "/a", cursor: 1}}, rc.queue)
}

func TestCleanupUnusedHooksDropsQueuedTasks(t *testing.T) {
	cleaned := 0
	rc := newRenderContext(nil, func() {})
	rc.slots["/gone"] = &hookSlot{records: []hookRecord{&effectRecord{cleanup: func() { cleaned++ }}}}
	rc.slots["/kept"] = &hookSlot{}
	rc.queue = []effectTask{{path: "/gone"}, {path: "/kept"}}
	rc.visited.Add("/kept")

	rc.CleanupUnusedHooks()

	assert.Equal(t, 1, cleaned)
	assert.NotContains(t, rc.slots, path.Path("/gone"))
	assert.Equal(t, []effectTask{{path: "/kept"}}, rc.queue)
}
