// Package testing provides a test harness for vdom component trees.
//
// # Quick Start
//
// Create a tester, mount a node, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := vdomtest.NewTesterWithT(t)
//	    tester.Mount(core.C(Counter, nil))
//
//	    // Find nodes
//	    button := tester.Find(vdomtest.ByTag("button")).First()
//
//	    // Fire events; the resulting render pass runs before Click returns
//	    tester.Click(vdomtest.ByText("+"))
//
//	    if !tester.Find(vdomtest.ByText("1")).Exists() {
//	        t.Error("expected count 1")
//	    }
//	}
//
// # Scheduling
//
// The tester owns the root's task queue. Setters and Render calls only
// schedule work; Pump runs it. PumpAndSettle bounds the number of tasks so
// an effect that keeps setting state fails the test instead of hanging it.
//
// # Snapshot Testing
//
// Capture and compare the surface tree:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/counter.snapshot.yaml")
//
// Update snapshots with:
//
//	VDOM_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import vdomtest "github.com/go-drift/vdom/pkg/testing"
package testing
