package testing

import (
	"testing"

	"github.com/go-drift/vdom/pkg/core"
	"github.com/go-drift/vdom/pkg/testing/internal/testbed"
)

func TestClick_UpdatesState(t *testing.T) {
	tester := NewTesterWithT(t)
	var taps []int
	tester.Mount(core.C(testbed.Counter, core.Props{"onTap": func(n int) { taps = append(taps, n) }}))

	if err := tester.Click(ByTag("button")); err != nil {
		t.Fatal(err)
	}
	// Fired at the text node, the click bubbles to the button.
	if err := tester.Click(ByText("+")); err != nil {
		t.Fatal(err)
	}

	if !tester.Find(ByText("2")).Exists() {
		t.Errorf("expected count 2, got %s", tester.HTML())
	}
	if len(taps) != 2 || taps[1] != 2 {
		t.Errorf("expected taps [1 2], got %v", taps)
	}
	if tester.Passes() != 3 {
		t.Errorf("expected 3 passes, got %d", tester.Passes())
	}
}

func TestInput(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.C(testbed.Echo, nil))

	if err := tester.Input(ByTag("input"), "hello"); err != nil {
		t.Fatal(err)
	}

	if got := tester.Find(ByTag("p")).Text(); got != "hello" {
		t.Errorf("expected echo 'hello', got %q", got)
	}
	if got := tester.Find(ByTag("input")).First().Attrs["value"]; got != "hello" {
		t.Errorf("expected input value 'hello', got %q", got)
	}
}

func TestFire_Errors(t *testing.T) {
	tester := NewTesterWithT(t)
	tester.Mount(core.El("p", nil, "static"))

	if err := tester.Click(ByTag("button")); err == nil {
		t.Error("expected error for missing node")
	}
	if err := tester.Click(ByTag("p")); err == nil {
		t.Error("expected error for missing listener")
	}
}
