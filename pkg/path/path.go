// Package path derives the stable, hierarchical identity of a node position.
//
// A Path joins a position in the virtual tree to the state persisted for it
// across render passes:
//
//	parent + "/" + typeToken + ":" + (key or index)
//
// Keys are used verbatim when present; otherwise the child's index among its
// siblings is used. The type token keeps a keyed text node and a keyed
// element from colliding even when their keys are equal.
package path

import (
	"strconv"
	"strings"
)

// Path is the identity string of a node position.
type Path string

// Root is the path of the root node of every tree.
const Root Path = "/root"

// Tokens for the non-host node types. Host elements use their tag name and
// components use a label derived from the component function.
const (
	FragmentToken = "fragment"
	TextToken     = "#text"
)

// Child returns the path of a child of parent. An empty key means the child
// is unkeyed and index is used instead.
func Child(parent Path, key string, index int, token string) Path {
	var sb strings.Builder
	sb.Grow(len(parent) + len(token) + len(key) + 8)
	sb.WriteString(string(parent))
	sb.WriteByte('/')
	sb.WriteString(token)
	sb.WriteByte(':')
	if key != "" {
		sb.WriteString(key)
	} else {
		sb.WriteString(strconv.Itoa(index))
	}
	return Path(sb.String())
}

// Parent returns the path one level up, or "" for Root and malformed paths.
func (p Path) Parent() Path {
	if p == Root {
		return ""
	}
	i := strings.LastIndexByte(string(p), '/')
	if i <= 0 {
		return ""
	}
	return p[:i]
}

// Segment returns the last "token:id" element of p.
func (p Path) Segment() string {
	i := strings.LastIndexByte(string(p), '/')
	return string(p[i+1:])
}

// HasPrefix reports whether p is ancestor or equal to other.
func (p Path) HasPrefix(ancestor Path) bool {
	if p == ancestor {
		return true
	}
	return strings.HasPrefix(string(p), string(ancestor)+"/")
}

func (p Path) String() string { return string(p) }
