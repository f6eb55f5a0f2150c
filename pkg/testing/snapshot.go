package testing

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/vdom/pkg/equal"
	"github.com/go-drift/vdom/pkg/surface/memory"
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the surface tree under the container.
type Snapshot struct {
	Nodes []*SnapshotNode `yaml:"nodes"`
}

// SnapshotNode is one element or text node. Text nodes have no tag.
type SnapshotNode struct {
	Tag      string            `yaml:"tag,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Style    map[string]string `yaml:"style,omitempty"`
	Events   []string          `yaml:"events,omitempty"`
	Children []*SnapshotNode   `yaml:"children,omitempty"`
}

// CaptureSnapshot captures the current surface tree.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	for _, child := range t.container.Children() {
		snap.Nodes = append(snap.Nodes, captureNode(child))
	}
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When VDOM_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("VDOM_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: VDOM_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-expected +actual)\n%s\n\nTo update: VDOM_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a diff between other (expected) and this snapshot. Returns
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	if equal.Deep(other, s) {
		return ""
	}
	return cmp.Diff(other, s, cmpopts.EquateEmpty())
}

// --- Internal ---

func captureNode(n *memory.Node) *SnapshotNode {
	if n.Kind == memory.TextNode {
		return &SnapshotNode{Text: n.Text}
	}
	out := &SnapshotNode{Tag: n.Tag}
	if len(n.Attrs) > 0 {
		out.Attrs = copyMap(n.Attrs)
	}
	if len(n.Style) > 0 {
		out.Style = copyMap(n.Style)
	}
	for name := range n.Listeners {
		out.Events = append(out.Events, name)
	}
	sort.Strings(out.Events)
	for _, c := range n.Children() {
		out.Children = append(out.Children, captureNode(c))
	}
	return out
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot YAML: %w", err)
	}
	return &snap, nil
}
