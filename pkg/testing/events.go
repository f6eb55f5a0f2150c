package testing

import "fmt"

// Fire dispatches event to the first node matched by finder and pumps. The
// event bubbles from that node to its ancestors.
func (t *Tester) Fire(finder Finder, event string, data any) error {
	result := t.Find(finder)
	if !result.Exists() {
		return fmt.Errorf("Fire: finder matched no nodes: %s", finder.Description())
	}
	if !t.surf.Dispatch(result.First(), event, data) {
		return fmt.Errorf("Fire: no %q listener reached from %s", event, finder.Description())
	}
	return t.Pump()
}

// Click fires a click event at the first node matched by finder.
func (t *Tester) Click(finder Finder) error {
	return t.Fire(finder, "click", nil)
}

// Input fires an input event carrying value at the first node matched by
// finder.
func (t *Tester) Input(finder Finder, value string) error {
	return t.Fire(finder, "input", value)
}
