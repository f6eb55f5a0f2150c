package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/go-drift/vdom/cmd/vdom/internal/config"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

// printer writes surface trees in the configured format.
type printer struct {
	format string
	color  bool
}

func newPrinter(cfg *config.Resolved) printer {
	return printer{format: cfg.Format, color: cfg.Color}
}

func (p printer) print(w io.Writer, container *memory.Node) {
	if p.format == config.FormatTree {
		for _, c := range container.Children() {
			p.tree(w, c, 0)
		}
		return
	}
	fmt.Fprintln(w, memory.InnerHTML(container))
}

func (p printer) tree(w io.Writer, n *memory.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.Kind == memory.TextNode {
		fmt.Fprintf(w, "%s%s\n", indent, p.paint(text.FgGreen, strconv.Quote(n.Text)))
		return
	}

	var sb strings.Builder
	sb.WriteString(p.paint(text.FgCyan, n.Tag))
	for _, name := range sortedNames(n.Attrs) {
		sb.WriteByte(' ')
		sb.WriteString(p.paint(text.FgYellow, name))
		if v := n.Attrs[name]; v != "" {
			sb.WriteString("=" + strconv.Quote(v))
		}
	}
	for _, name := range sortedNames(n.Style) {
		sb.WriteString(" " + p.paint(text.FgMagenta, "style."+name) + "=" + strconv.Quote(n.Style[name]))
	}
	for _, name := range sortedNames(n.Listeners) {
		sb.WriteString(" " + p.paint(text.FgHiBlack, "@"+name))
	}
	fmt.Fprintf(w, "%s%s\n", indent, sb.String())

	for _, c := range n.Children() {
		p.tree(w, c, depth+1)
	}
}

func (p printer) paint(c text.Color, s string) string {
	if !p.color {
		return s
	}
	return c.Sprint(s)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
