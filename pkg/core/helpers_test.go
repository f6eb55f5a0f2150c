package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-drift/vdom/pkg/path"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

// probe collects what test components observed while rendering.
type probe struct {
	setters map[string]*State[int]
	renders map[string]int
	log     []string
}

func newProbe() *probe {
	return &probe{setters: make(map[string]*State[int]), renders: make(map[string]int)}
}

func (p *probe) record(format string, args ...any) {
	p.log = append(p.log, fmt.Sprintf(format, args...))
}

// counter renders <li>name:count</li> and registers its setter by name.
func counter(ctx BuildContext, props Props) *Node {
	count, set := UseState(ctx, 0)
	name := fmt.Sprint(props["name"])
	if p, ok := props["probe"].(*probe); ok {
		p.setters[name] = set
		p.renders[name]++
	}
	return El("li", nil, fmt.Sprintf("%s:%d", name, count))
}

func counterNode(p *probe, key, name string) *Node {
	props := Props{"name": name, "probe": p}
	if key != "" {
		props["key"] = key
	}
	return C(counter, props)
}

func keyedList(p *probe, keys ...string) *Node {
	items := make([]any, 0, len(keys))
	for _, k := range keys {
		items = append(items, counterNode(p, k, k))
	}
	return El("ul", nil, items...)
}

func mountTest(t *testing.T, node *Node, opts ...Option) (*Root, *memory.Surface, *memory.Node) {
	t.Helper()
	s := memory.New()
	c := s.NewContainer()
	r, err := MountRoot(s, node, c, opts...)
	require.NoError(t, err)
	return r, s, c
}

func counterPath(parent path.Path, key string, index int) path.Path {
	return path.Child(parent, key, index, ComponentType(counter).Token())
}
