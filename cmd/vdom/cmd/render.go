package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/go-drift/vdom/cmd/vdom/internal/config"
	"github.com/go-drift/vdom/cmd/vdom/internal/scenario"
	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/errors"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

const (
	statsKey  = "stats"
	formatKey = "format"
	allKey    = "all"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render every frame of a scenario file and print the result",
		Description: `Mounts the first frame of the scenario, then renders each following
frame on the same root so unchanged nodes are reused. Prints the final tree,
or every frame with --all.`,
		ArgsUsage: "<scenario.yaml>",
		Flags: configFlags(
			&cli.BoolFlag{
				Name:  statsKey,
				Usage: "print surface operations per frame",
			},
			&cli.BoolFlag{
				Name:  allKey,
				Usage: "print the tree after every frame",
			},
			&cli.StringFlag{
				Name:  formatKey,
				Usage: "output format: html or tree (default from vdom.yaml)",
			},
		),
		Action: runRender,
	}
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	if f := cmd.String(formatKey); f != "" {
		if f != config.FormatHTML && f != config.FormatTree {
			return errors.Wrap("vdom.render", errors.KindConfig, fmt.Errorf("unknown format %q", f))
		}
		cfg.Format = f
	}
	if cmd.NArg() != 1 {
		return errors.Wrap("vdom.render", errors.KindScenario, fmt.Errorf("expected one scenario file, got %d arguments", cmd.NArg()))
	}

	s, err := scenario.Load(cmd.Args().First())
	if err != nil {
		return errors.Wrap("vdom.render", errors.KindScenario, err)
	}

	w := output(cmd)
	p := newPrinter(cfg)
	var onFrame func(int, *memory.Node)
	if cmd.Bool(allKey) {
		onFrame = func(i int, container *memory.Node) {
			fmt.Fprintf(w, "# frame %d\n", i+1)
			p.print(w, container)
		}
	}

	container, stats, err := playFrames(s.Nodes(), onFrame)
	if err != nil {
		return err
	}
	if onFrame == nil {
		p.print(w, container)
	}
	if cmd.Bool(statsKey) {
		writeStats(w, stats)
	}
	return nil
}

// playFrames mounts the first frame and renders the rest on the same root.
// A panic while rendering is returned as a KindRender error wrapping the
// *errors.PanicError, which names the failing component.
func playFrames(frames []*core.Node, onFrame func(int, *memory.Node)) (*memory.Node, []memory.Stats, error) {
	surf := memory.New()
	container := surf.NewContainer()
	root := core.NewRoot(surf)

	var stats []memory.Stats
	for i, frame := range frames {
		surf.ResetStats()
		if err := playFrame(root, container, frame, i == 0); err != nil {
			return nil, nil, errors.Wrap("vdom.render", errors.KindRender, fmt.Errorf("frame %d: %w", i+1, err))
		}
		stats = append(stats, surf.Stats())
		if onFrame != nil {
			onFrame(i, container)
		}
	}
	return container, stats, nil
}

func playFrame(root *core.Root, container *memory.Node, frame *core.Node, mount bool) (err error) {
	defer errors.Catch("vdom.render", &err, root.PanicPath)

	if mount {
		if err := root.Mount(frame, container); err != nil {
			return err
		}
	} else {
		root.Render(frame)
	}
	root.Flush()
	return nil
}

func writeStats(w io.Writer, stats []memory.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"frame", "elements", "texts", "text updates", "attr updates", "inserts", "appends", "moves", "removes"})

	var total memory.Stats
	for i, s := range stats {
		table.Append(statsRow(strconv.Itoa(i+1), s))
		total.Elements += s.Elements
		total.Texts += s.Texts
		total.TextUpdates += s.TextUpdates
		total.AttrUpdates += s.AttrUpdates
		total.Inserts += s.Inserts
		total.Appends += s.Appends
		total.Moves += s.Moves
		total.Removes += s.Removes
	}
	table.SetFooter(statsRow("total", total))
	table.Render()
}

func statsRow(label string, s memory.Stats) []string {
	return []string{
		label,
		humanize.Comma(int64(s.Elements)),
		humanize.Comma(int64(s.Texts)),
		humanize.Comma(int64(s.TextUpdates)),
		humanize.Comma(int64(s.AttrUpdates)),
		humanize.Comma(int64(s.Inserts)),
		humanize.Comma(int64(s.Appends)),
		humanize.Comma(int64(s.Moves)),
		humanize.Comma(int64(s.Removes)),
	}
}
