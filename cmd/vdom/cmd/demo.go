package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Run the keyed counter walkthrough",
		Description: `Mounts a keyed list of counters a and b, sets b to 5, then swaps the
two. b keeps its count and its element; the swap costs a single move.`,
		Flags:  configFlags(),
		Action: runDemo,
	}
}

func runDemo(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	return playDemo(output(cmd), newPrinter(cfg))
}

// demoCounter is a counter labelled by its key. It hands its setter to the
// "register" prop so the demo can drive it from outside.
func demoCounter(ctx core.BuildContext, props core.Props) *core.Node {
	count, setCount := core.UseState(ctx, 0)
	if register, ok := props["register"].(func(string, *core.State[int])); ok {
		register(ctx.Key(), setCount)
	}
	return core.El("li", core.Props{
		"onClick": func() { setCount.Update(func(n int) int { return n + 1 }) },
	}, ctx.Key(), ": ", count)
}

func playDemo(w io.Writer, p printer) error {
	setters := make(map[string]*core.State[int])
	register := func(key string, s *core.State[int]) { setters[key] = s }
	list := func(keys ...string) *core.Node {
		items := make([]any, 0, len(keys))
		for _, k := range keys {
			items = append(items, core.C(demoCounter, core.Props{"key": k, "register": register}))
		}
		return core.El("ul", nil, items...)
	}

	surf := memory.New()
	container := surf.NewContainer()
	root, err := core.MountRoot(surf, list("a", "b"), container)
	if err != nil {
		return err
	}
	step := func(title string) {
		stats := surf.Stats()
		fmt.Fprintf(w, "# %s (created %d, moved %d, removed %d)\n", title, stats.Creates(), stats.Moves, stats.Removes)
		p.print(w, container)
		surf.ResetStats()
	}
	step("mount [a b]")

	setters["b"].Set(5)
	root.Flush()
	step("set b to 5")

	root.Render(list("b", "a"))
	root.Flush()
	step("swap to [b a]")

	bHandle := container.Children()[0].Children()[0]
	surf.Dispatch(bHandle, "click", nil)
	root.Flush()
	step("click b")

	return nil
}
