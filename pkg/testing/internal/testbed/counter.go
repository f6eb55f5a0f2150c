// Package testbed provides internal test components for the testing framework.
package testbed

import (
	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

// Counter renders a "+" button and the current count. Props: "initial"
// (int) seeds the count, "onTap" (func(int)) observes every increment.
func Counter(ctx core.BuildContext, props core.Props) *core.Node {
	initial, _ := props["initial"].(int)
	onTap, _ := props["onTap"].(func(int))
	count, setCount := core.UseState(ctx, initial)

	return core.El("div", core.Props{"className": "counter"},
		core.El("button", core.Props{"onClick": func() {
			setCount.Update(func(n int) int { return n + 1 })
			if onTap != nil {
				onTap(setCount.Value())
			}
		}}, "+"),
		core.El("span", nil, count),
	)
}

// Echo mirrors the value of its input field into a paragraph.
func Echo(ctx core.BuildContext, _ core.Props) *core.Node {
	text, setText := core.UseState(ctx, "")
	return core.Fragment(
		core.El("input", core.Props{
			"value": text,
			"onInput": func(e memory.Event) {
				s, _ := e.Data.(string)
				setText.Set(s)
			},
		}),
		core.El("p", nil, text),
	)
}

// Runaway sets its own state from an effect after every render, so it never
// settles.
func Runaway(ctx core.BuildContext, _ core.Props) *core.Node {
	n, setN := core.UseState(ctx, 0)
	core.UseEffect(ctx, func() func() {
		setN.Set(n + 1)
		return nil
	}, nil)
	return core.Text(n)
}
