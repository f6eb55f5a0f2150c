package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/vdom/pkg/surface/memory"
)

// Finder locates nodes in the surface tree.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *memory.Node) []*memory.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*memory.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *memory.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.description()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *memory.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *memory.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.description()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*memory.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Text returns the text content of the first match. Panics if no matches.
func (r FinderResult) Text() string {
	return r.First().TextContent()
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

// tagFinder matches elements by tag.
type tagFinder struct {
	tag string
}

func (f *tagFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, func(n *memory.Node) bool {
		return n.Kind == memory.ElementNode && n.Tag == f.tag
	})
}

func (f *tagFinder) Description() string {
	return fmt.Sprintf("ByTag(%q)", f.tag)
}

// ByTag returns a finder that matches elements with the given tag.
func ByTag(tag string) Finder {
	return &tagFinder{tag: tag}
}

// textFinder matches text nodes by exact content.
type textFinder struct {
	text string
}

func (f *textFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, func(n *memory.Node) bool {
		return n.Kind == memory.TextNode && n.Text == f.text
	})
}

func (f *textFinder) Description() string {
	return fmt.Sprintf("ByText(%q)", f.text)
}

// ByText returns a finder that matches text nodes with exact content.
// Events fired at a text node bubble to its elements.
func ByText(text string) Finder {
	return &textFinder{text: text}
}

// textContainingFinder matches text nodes containing a substring.
type textContainingFinder struct {
	substring string
}

func (f *textContainingFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, func(n *memory.Node) bool {
		return n.Kind == memory.TextNode && strings.Contains(n.Text, f.substring)
	})
}

func (f *textContainingFinder) Description() string {
	return fmt.Sprintf("ByTextContaining(%q)", f.substring)
}

// ByTextContaining returns a finder that matches text nodes containing the
// given substring.
func ByTextContaining(substring string) Finder {
	return &textContainingFinder{substring: substring}
}

// attrFinder matches elements carrying an attribute, optionally with a value.
type attrFinder struct {
	name  string
	value *string
}

func (f *attrFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, func(n *memory.Node) bool {
		v, ok := n.Attrs[f.name]
		if !ok {
			return false
		}
		return f.value == nil || *f.value == v
	})
}

func (f *attrFinder) Description() string {
	if f.value == nil {
		return fmt.Sprintf("ByAttr(%q)", f.name)
	}
	return fmt.Sprintf("ByAttr(%q=%q)", f.name, *f.value)
}

// ByAttr returns a finder that matches elements whose attribute name equals
// value. With no value, any element carrying the attribute matches.
func ByAttr(name string, value ...string) Finder {
	f := &attrFinder{name: name}
	if len(value) > 0 {
		f.value = &value[0]
	}
	return f
}

// predicateFinder matches nodes satisfying a predicate.
type predicateFinder struct {
	fn   func(*memory.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(*memory.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds nodes matching 'matching' that are descendants
// of nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *memory.Node) []*memory.Node {
	ancestors := f.of.Evaluate(root)
	if len(ancestors) == 0 {
		return nil
	}
	var results []*memory.Node
	seen := make(map[*memory.Node]bool)
	for _, ancestor := range ancestors {
		// Search within each ancestor's subtree (skip the ancestor itself)
		for _, child := range ancestor.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching'
// that are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// ancestorFinder finds nodes matching 'matching' that are ancestors
// of nodes matching 'of'.
type ancestorFinder struct {
	of       Finder
	matching Finder
}

func (f *ancestorFinder) Evaluate(root *memory.Node) []*memory.Node {
	descendants := f.of.Evaluate(root)
	if len(descendants) == 0 {
		return nil
	}
	candidates := make(map[*memory.Node]bool)
	for _, n := range f.matching.Evaluate(root) {
		candidates[n] = true
	}
	// Walk up from each descendant, keeping tree order of first discovery
	var results []*memory.Node
	seen := make(map[*memory.Node]bool)
	for _, d := range descendants {
		for n := d.Parent(); n != nil; n = n.Parent() {
			if candidates[n] && !seen[n] {
				seen[n] = true
				results = append(results, n)
			}
			if n == root {
				break
			}
		}
	}
	return results
}

func (f *ancestorFinder) Description() string {
	return fmt.Sprintf("Ancestor(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Ancestor returns a finder that matches nodes satisfying 'matching'
// that are ancestors of nodes matching 'of'.
func Ancestor(of, matching Finder) Finder {
	return &ancestorFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting
// nodes that satisfy the predicate.
func collectMatches(root *memory.Node, predicate func(*memory.Node) bool) []*memory.Node {
	var results []*memory.Node
	root.Walk(func(n *memory.Node) bool {
		if predicate(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}
