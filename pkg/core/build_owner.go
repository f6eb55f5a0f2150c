package core

import "github.com/go-drift/vdom/pkg/scheduler"

// BuildOwner schedules render passes for a root. Any number of ScheduleBuild
// calls before the pass runs collapse into one pass.
type BuildOwner struct {
	pending *scheduler.Coalescer
	pass    func()
	passes  int

	// OnNeedsFrame is called when a pass becomes scheduled, signalling the
	// host that its executor has work. It is not called again until that
	// pass has run.
	OnNeedsFrame func()
}

// NewBuildOwner creates a BuildOwner running pass on exec.
func NewBuildOwner(exec scheduler.Executor, pass func()) *BuildOwner {
	b := &BuildOwner{pass: pass}
	b.pending = scheduler.NewCoalescer(exec, b.FlushBuild)
	return b
}

// ScheduleBuild requests a render pass on the next tick.
func (b *BuildOwner) ScheduleBuild() {
	if b.pending.Scheduled() {
		return
	}
	b.pending.Request()
	if b.OnNeedsFrame != nil {
		b.OnNeedsFrame()
	}
}

// NeedsWork reports whether a pass is scheduled.
func (b *BuildOwner) NeedsWork() bool {
	return b.pending.Scheduled()
}

// CancelBuild withdraws a scheduled pass.
func (b *BuildOwner) CancelBuild() {
	b.pending.Cancel()
}

// FlushBuild runs one render pass immediately.
func (b *BuildOwner) FlushBuild() {
	b.passes++
	b.pass()
}

// Passes returns the number of render passes run so far.
func (b *BuildOwner) Passes() int {
	return b.passes
}
