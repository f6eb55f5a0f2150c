// Package scheduler provides the cooperative task queue the runtime defers
// its render and effect passes to.
//
// A "tick" is one synchronous stretch of work. Anything scheduled during a
// tick runs after it, in FIFO order, on the same logical thread. The host
// supplies the Executor; Loop is a ready-made one that can be drained
// synchronously (tests, CLIs) or owned by a goroutine via Run.
package scheduler

// Executor defers tasks to the end of the current tick.
type Executor interface {
	Schedule(task func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(task func())

// Schedule calls f(task).
func (f ExecutorFunc) Schedule(task func()) { f(task) }

// Coalescer collapses any number of requests made before its task runs into
// a single invocation of fn.
//
// The pending flag is cleared before fn runs, so a request made from inside
// fn schedules a fresh invocation for the following tick.
type Coalescer struct {
	exec      Executor
	fn        func()
	scheduled bool
	gen       uint64
}

// NewCoalescer returns a Coalescer that runs fn on exec.
func NewCoalescer(exec Executor, fn func()) *Coalescer {
	return &Coalescer{exec: exec, fn: fn}
}

// Request schedules fn unless it is already scheduled.
func (c *Coalescer) Request() {
	if c.scheduled {
		return
	}
	c.scheduled = true
	gen := c.gen
	c.exec.Schedule(func() {
		if gen == c.gen {
			c.run()
		}
	})
}

// Cancel withdraws a pending invocation. The task already handed to the
// executor still runs but does nothing.
func (c *Coalescer) Cancel() {
	if !c.scheduled {
		return
	}
	c.scheduled = false
	c.gen++
}

// Scheduled reports whether an invocation is pending.
func (c *Coalescer) Scheduled() bool {
	return c.scheduled
}

func (c *Coalescer) run() {
	c.scheduled = false
	c.fn()
}
