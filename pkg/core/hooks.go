package core

import (
	"slices"

	"github.com/go-drift/vdom/pkg/equal"
)

// hookRecord is the variant stored in a hook slot: *stateCell or *effectRecord.
type hookRecord interface {
	isHook()
}

type stateCell struct {
	value  any
	handle any // *State[T], kept so the setter is stable across renders
}

func (*stateCell) isHook() {}

type effectRecord struct {
	effect  func() func()
	deps    []any
	always  bool // the last render passed nil deps
	cleanup func()
}

func (*effectRecord) isHook() {}

// State is the setter side of a UseState hook. The same *State is returned on
// every render of the same component, so it may be listed as an effect
// dependency.
//
// State is NOT thread-safe. Setters must run on the root's logical thread.
type State[T any] struct {
	cell *stateCell
	rc   *RenderContext
}

// Value returns the current value, including updates not yet rendered.
func (s *State[T]) Value() T {
	v, _ := s.cell.value.(T)
	return v
}

// Set stores value and requests a render pass, unless value is identical to
// the current one.
func (s *State[T]) Set(value T) {
	if equal.Identical(s.cell.value, any(value)) {
		return
	}
	s.cell.value = value
	s.rc.requestRender()
}

// Update applies fn to the current value and stores the result like Set.
func (s *State[T]) Update(fn func(prev T) T) {
	s.Set(fn(s.Value()))
}

// UseState returns the component's state value at the current hook position
// and its setter. initial is used on the first render only.
//
// Example:
//
//	func Counter(ctx core.BuildContext, props core.Props) *core.Node {
//	    count, setCount := core.UseState(ctx, 0)
//	    return core.El("button", core.Props{
//	        "onClick": func() { setCount.Update(func(n int) int { return n + 1 }) },
//	    }, count)
//	}
func UseState[T any](ctx BuildContext, initial T) (T, *State[T]) {
	return useState(ctx, "core.UseState", func() T { return initial })
}

// UseStateFunc is like UseState but computes the initial value lazily; init
// runs once, on the first render.
func UseStateFunc[T any](ctx BuildContext, init func() T) (T, *State[T]) {
	return useState(ctx, "core.UseStateFunc", init)
}

func useState[T any](ctx BuildContext, op string, init func() T) (T, *State[T]) {
	rc, slot, cursor := ctx.nextHook(op)

	var cell *stateCell
	if cursor < len(slot.records) {
		cell, _ = slot.records[cursor].(*stateCell)
	}
	if cell == nil {
		cell = &stateCell{value: init()}
		setRecord(slot, cursor, cell)
	}

	s, ok := cell.handle.(*State[T])
	if !ok {
		s = &State[T]{cell: cell}
		cell.handle = s
	}
	s.rc = rc
	return s.Value(), s
}

// UseEffect schedules effect to run after the render pass that called it.
//
// deps controls when it runs again: nil means after every render, an empty
// slice means only once, otherwise whenever any element differs (by
// identity) from the previous render's deps. If effect returns a function, it
// runs before the next run of the same effect and when the component
// unmounts.
func UseEffect(ctx BuildContext, effect func() func(), deps []any) {
	rc, slot, cursor := ctx.nextHook("core.UseEffect")

	var rec *effectRecord
	if cursor < len(slot.records) {
		rec, _ = slot.records[cursor].(*effectRecord)
	}

	due := rec == nil || deps == nil || rec.always || !equal.Deps(rec.deps, deps)
	if rec == nil {
		rec = &effectRecord{}
		setRecord(slot, cursor, rec)
	}
	rec.effect = effect
	if deps == nil {
		rec.always = true
		rec.deps = nil
	} else {
		rec.always = false
		rec.deps = slices.Clone(deps)
	}

	if due {
		rc.queue = append(rc.queue, effectTask{path: ctx.path, cursor: cursor})
		rc.effects.Request()
	}
}

// setRecord stores rec at cursor, growing the slot or replacing a record of a
// different kind (hook order changed between renders).
func setRecord(slot *hookSlot, cursor int, rec hookRecord) {
	if cursor < len(slot.records) {
		slot.records[cursor] = rec
		return
	}
	slot.records = append(slot.records, rec)
}
