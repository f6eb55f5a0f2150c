package cmd

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

const (
	sizeKey       = "size"
	iterationsKey = "iterations"
	seedKey       = "seed"
)

func benchCommand() *cli.Command {
	return &cli.Command{
		Name:  "bench",
		Usage: "Time render passes over keyed lists of stateful rows",
		Flags: configFlags(
			&cli.IntFlag{
				Name:  sizeKey,
				Usage: "rows per list (default: bench.sizes from vdom.yaml)",
			},
			&cli.IntFlag{
				Name:  iterationsKey,
				Usage: "passes per benchmark (default: bench.iterations from vdom.yaml)",
			},
			&cli.IntFlag{
				Name:  seedKey,
				Usage: "shuffle seed",
				Value: 1,
			},
		),
		Action: runBench,
	}
}

func runBench(ctx context.Context, cmd *cli.Command) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}

	sizes := cfg.BenchSizes
	if n := cmd.Int(sizeKey); n > 0 {
		sizes = []int{int(n)}
	}
	iterations := cfg.BenchIterations
	if n := cmd.Int(iterationsKey); n > 0 {
		iterations = int(n)
	}
	seed := uint64(cmd.Int(seedKey))

	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("%s: %s passes per benchmark", cfg.Project, humanize.Comma(int64(iterations))))
	tbl.SetOutputMirror(output(cmd))
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "moves/pass", "creates/pass"})

	for _, size := range sizes {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("bench: %d rows", size)
		for _, b := range []struct {
			name string
			run  func(size, iterations int, seed uint64) benchResult
		}{
			{"shuffle", benchShuffle},
			{"update one", benchUpdate},
			{"rotate", benchRotate},
		} {
			res := b.run(size, iterations, seed)
			calc := res.tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("%s: %s rows", b.name, humanize.Comma(int64(size))),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
				perPass(res.stats.Moves, iterations),
				perPass(res.stats.Creates(), iterations),
			})
		}
	}

	tbl.Render()
	return nil
}

type benchResult struct {
	tach  *tachymeter.Tachymeter
	stats memory.Stats
}

// benchRow is a stateful row: its hit count survives reorders.
func benchRow(ctx core.BuildContext, props core.Props) *core.Node {
	hits, setHits := core.UseState(ctx, 0)
	if register, ok := props["register"].(func(*core.State[int])); ok {
		register(setHits)
	}
	return core.El("tr", nil,
		core.El("td", nil, ctx.Key()),
		core.El("td", nil, hits),
	)
}

type benchTable struct {
	surf    *memory.Surface
	root    *core.Root
	keys    []string
	setters []*core.State[int]
}

func newBenchTable(size int) *benchTable {
	b := &benchTable{surf: memory.New(), keys: make([]string, size)}
	for i := range b.keys {
		b.keys[i] = "r" + strconv.Itoa(i)
	}
	var err error
	b.root, err = core.MountRoot(b.surf, b.node(true), b.surf.NewContainer())
	if err != nil {
		panic(err)
	}
	b.surf.ResetStats()
	return b
}

func (b *benchTable) node(register bool) *core.Node {
	rows := make([]any, len(b.keys))
	for i, k := range b.keys {
		props := core.Props{"key": k}
		if register {
			props["register"] = func(s *core.State[int]) { b.setters = append(b.setters, s) }
		}
		rows[i] = core.C(benchRow, props)
	}
	return core.El("table", nil, core.El("tbody", nil, rows...))
}

// pass renders the current keys and records the pass time.
func (b *benchTable) pass(tach *tachymeter.Tachymeter) {
	start := time.Now()
	b.root.Render(b.node(false))
	b.root.Flush()
	tach.AddTime(time.Since(start))
}

func benchShuffle(size, iterations int, seed uint64) benchResult {
	b := newBenchTable(size)
	rng := rand.New(rand.NewPCG(seed, seed))
	tach := tachymeter.New(&tachymeter.Config{Size: iterations})
	for i := 0; i < iterations; i++ {
		rng.Shuffle(len(b.keys), func(i, j int) { b.keys[i], b.keys[j] = b.keys[j], b.keys[i] })
		b.pass(tach)
	}
	return benchResult{tach: tach, stats: b.surf.Stats()}
}

func benchRotate(size, iterations int, _ uint64) benchResult {
	b := newBenchTable(size)
	tach := tachymeter.New(&tachymeter.Config{Size: iterations})
	for i := 0; i < iterations; i++ {
		b.keys = append(b.keys[1:], b.keys[0])
		b.pass(tach)
	}
	return benchResult{tach: tach, stats: b.surf.Stats()}
}

func benchUpdate(size, iterations int, seed uint64) benchResult {
	b := newBenchTable(size)
	rng := rand.New(rand.NewPCG(seed, seed))
	tach := tachymeter.New(&tachymeter.Config{Size: iterations})
	for i := 0; i < iterations; i++ {
		s := b.setters[rng.IntN(len(b.setters))]
		start := time.Now()
		s.Update(func(n int) int { return n + 1 })
		b.root.Flush()
		tach.AddTime(time.Since(start))
	}
	return benchResult{tach: tach, stats: b.surf.Stats()}
}

func perPass(total, iterations int) string {
	if iterations == 0 {
		return "0"
	}
	return humanize.CommafWithDigits(float64(total)/float64(iterations), 2)
}
