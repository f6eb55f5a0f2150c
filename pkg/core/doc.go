// Package core provides the reconciler and the hook engine.
//
// A tree of Nodes describes what a surface should show. A Root keeps a
// persisted instance tree mirroring the last Node tree it rendered and, on
// every render pass, diffs the new Node tree against it, emitting the minimal
// set of surface mutations.
//
// # Nodes
//
// Nodes are immutable descriptions built fresh on every render:
//
//	core.El("ul", nil,
//	    core.El("li", core.Props{"key": "a"}, "first"),
//	    core.El("li", core.Props{"key": "b"}, "second"),
//	)
//
// Keys give siblings a stable identity across passes; unkeyed siblings are
// matched by type in order.
//
// # Components and Hooks
//
// A Component is a function from props to a Node. Components keep state with
// hooks, which are addressed by the component's path and the order in which
// they are called:
//
//	func Counter(ctx core.BuildContext, props core.Props) *core.Node {
//	    count, setCount := core.UseState(ctx, 0)
//	    core.UseEffect(ctx, func() func() {
//	        log.Printf("count is %d", count)
//	        return nil
//	    }, []any{count})
//	    return core.El("button", core.Props{
//	        "onClick": func() { setCount.Set(count + 1) },
//	    }, count)
//	}
//
// Hooks must be called unconditionally and in the same order on every render.
// This is not checked; breaking it mixes up the component's records.
//
// # Scheduling
//
// State setters never render synchronously. They schedule a pass on the
// root's executor, and all setters called before the pass runs are applied
// by that single pass. Effects queued during a pass run on a later task,
// after the pass and its hook garbage collection. By default a Root owns a
// scheduler.Loop drained with Root.Flush; WithExecutor hands scheduling to
// the host.
//
// # Failures
//
// Precondition failures of Mount return errors matching
// errors.ErrInvalidContainer and errors.ErrNullRoot. Hooks used outside
// their component's render panic with an error matching
// errors.ErrNotInRenderContext. Panics raised by components or effect
// cleanups are not recovered: they propagate out of the pass, leaving the
// surface partially updated.
package core
