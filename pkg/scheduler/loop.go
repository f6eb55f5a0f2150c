package scheduler

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopRunning is returned when Run is called on a loop that is already running.
var ErrLoopRunning = errors.New("scheduler: loop is already running")

// Loop is a single-owner FIFO task queue.
//
// Schedule and Drain must be called from the goroutine that owns the loop.
// Submit is the only goroutine-safe entry point: it hands a task to the
// owner, which picks it up on its next Drain or while in Run.
type Loop struct {
	tasks []func()

	mu      sync.Mutex
	ingress []func()
	wake    chan struct{}
	running bool
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Schedule queues task to run after the current tick.
func (l *Loop) Schedule(task func()) {
	if task == nil {
		return
	}
	l.tasks = append(l.tasks, task)
}

// Submit queues task from any goroutine.
func (l *Loop) Submit(task func()) {
	if task == nil {
		return
	}
	l.mu.Lock()
	l.ingress = append(l.ingress, task)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued tasks, including submitted ones.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.tasks) + len(l.ingress)
}

// Drain runs queued tasks until the queue is empty, including tasks queued
// while draining. It returns the number of tasks run. A panicking task
// propagates to the caller; tasks after it stay queued.
func (l *Loop) Drain() int {
	ran := 0
	for l.Step() {
		ran++
	}
	return ran
}

// Step runs the oldest queued task, if any, and reports whether one ran.
func (l *Loop) Step() bool {
	l.takeIngress()
	if len(l.tasks) == 0 {
		return false
	}
	task := l.tasks[0]
	l.tasks[0] = nil
	l.tasks = l.tasks[1:]
	task()
	return true
}

func (l *Loop) takeIngress() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.ingress) == 0 {
		return
	}
	l.tasks = append(l.tasks, l.ingress...)
	l.ingress = nil
}

// Run owns the loop on the calling goroutine, draining tasks as they are
// submitted, until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()

	for {
		l.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}
