package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

const swap = `
name: swap
frames:
  - tag: ul
    attrs: {id: list}
    children:
      - {tag: li, key: a, text: A}
      - {tag: li, key: b, text: B}
  - tag: ul
    attrs: {id: list}
    children:
      - {tag: li, key: b, text: B}
      - {tag: li, key: a, text: A}
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(swap))
	require.NoError(t, err)

	assert.Equal(t, "swap", s.Name)
	require.Len(t, s.Frames, 2)
	assert.Equal(t, "b", s.Frames[1].Children[0].Key)
	require.NotNil(t, s.Frames[0].Children[0].Text)
	assert.Equal(t, "A", *s.Frames[0].Children[0].Text)
}

func TestScalarShorthand(t *testing.T) {
	s, err := Parse([]byte(`
frames:
  - tag: p
    children: [hello, {tag: b, text: world}, "!"]
`))
	require.NoError(t, err)

	n := s.Nodes()[0]
	require.Len(t, n.Children, 3)
	assert.Equal(t, core.KindText, n.Children[0].Type.Kind())
	assert.Equal(t, "hello", n.Children[0].Text)
	assert.Equal(t, "!", n.Children[2].Text)
}

func TestBuildRendersOnSurface(t *testing.T) {
	s, err := Parse([]byte(`
frames:
  - tag: div
    text: "head "
    attrs: {className: box, hidden: true, tabIndex: 2}
    style: {color: red}
    children:
      - fragment: true
        children: [x, {text: y, key: t}]
`))
	require.NoError(t, err)

	surf := memory.New()
	c := surf.NewContainer()
	_, err = core.MountRoot(surf, s.Nodes()[0], c)
	require.NoError(t, err)

	assert.Equal(t, `<div class="box" hidden tabIndex="2" style="color:red;">head xy</div>`, memory.InnerHTML(c))
}

func TestFramesReconcile(t *testing.T) {
	s, err := Parse([]byte(swap))
	require.NoError(t, err)
	frames := s.Nodes()

	surf := memory.New()
	c := surf.NewContainer()
	root, err := core.MountRoot(surf, frames[0], c)
	require.NoError(t, err)
	surf.ResetStats()

	root.Render(frames[1])
	root.Flush()

	assert.Equal(t, `<ul id="list"><li>B</li><li>A</li></ul>`, memory.InnerHTML(c))
	assert.Zero(t, surf.Stats().Creates())
	assert.Equal(t, 1, surf.Stats().Moves)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"syntax", "frames: [", "invalid scenario YAML"},
		{"no frames", "name: empty", `scenario "empty" has no frames`},
		{"empty node", "frames: [{key: a}]", "frames[0]: node needs a tag, text or fragment"},
		{"fragment tag", "frames: [{fragment: true, tag: p}]", "frames[0]: a fragment cannot have a tag"},
		{"fragment text", "frames: [{fragment: true, text: x}]", "a fragment cannot have text"},
		{"text attrs", "frames: [{tag: p, children: [{text: x, attrs: {a: 1}}]}]", "frames[0].children[0]: only elements take attrs"},
		{"text children", "frames: [{text: x, children: [y]}]", "a text node cannot have children"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(swap), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Frames, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
