package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChild(t *testing.T) {
	tests := []struct {
		name   string
		parent Path
		key    string
		index  int
		token  string
		want   Path
	}{
		{"unkeyed host", Root, "", 2, "div", "/root/div:2"},
		{"keyed host", Root, "a", 2, "li", "/root/li:a"},
		{"fragment", "/root/div:0", "", 0, FragmentToken, "/root/div:0/fragment:0"},
		{"text", "/root", "", 1, TextToken, "/root/#text:1"},
		{"component", Root, "row-1", 0, "cmp-1f", "/root/cmp-1f:row-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Child(tt.parent, tt.key, tt.index, tt.token))
		})
	}
}

func TestChildTypeTokenSeparatesEqualKeys(t *testing.T) {
	text := Child(Root, "1", 0, TextToken)
	host := Child(Root, "1", 0, "span")

	assert.NotEqual(t, text, host)
}

func TestChildKeyIgnoresIndex(t *testing.T) {
	assert.Equal(t, Child(Root, "k", 0, "li"), Child(Root, "k", 7, "li"))
	assert.NotEqual(t, Child(Root, "", 0, "li"), Child(Root, "", 7, "li"))
}

func TestParentAndSegment(t *testing.T) {
	p := Child(Child(Root, "", 0, "ul"), "b", 1, "li")

	assert.Equal(t, Path("/root/ul:0"), p.Parent())
	assert.Equal(t, "li:b", p.Segment())
	assert.Equal(t, Root, p.Parent().Parent())
	assert.Equal(t, Path(""), Root.Parent())
}

func TestHasPrefix(t *testing.T) {
	p := Path("/root/ul:0/li:b")

	assert.True(t, p.HasPrefix("/root/ul:0"))
	assert.True(t, p.HasPrefix(p))
	assert.False(t, p.HasPrefix("/root/ul:"))
	assert.False(t, Path("/root/ul:01").HasPrefix("/root/ul:0"))
}
