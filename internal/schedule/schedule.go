// Package schedule provides cancellable delayed callbacks that always run on
// their owner's event loop, plus a deterministic scheduler for tests.
package schedule

import (
	"sync"
	"sync/atomic"
	"time"
)

// Task is a handle to a scheduled callback.
type Task interface {
	// Stop cancels the callback. It reports whether the call prevented the
	// callback from running.
	Stop() bool
}

// Scheduler runs callbacks after a delay.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Task
}

// Loop is a real-time Scheduler. Timers fire on runtime goroutines but the
// callbacks are queued on Tasks, so a single consumer executes all of them in
// order alongside its other events. A callback whose task was stopped before
// the consumer reached it is skipped.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// NewLoop creates a Loop whose queue holds up to buffer pending callbacks.
func NewLoop(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Tasks is the queue of callbacks ready to run. The consumer must call each
// received function.
func (l *Loop) Tasks() <-chan func() {
	return l.tasks
}

// Close stops delivering callbacks. Timers that fire afterwards are dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Now implements Scheduler.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc implements Scheduler.
func (l *Loop) AfterFunc(d time.Duration, f func()) Task {
	t := &loopTask{}
	t.timer = time.AfterFunc(d, func() {
		run := func() {
			if t.stopped.Load() {
				return
			}
			t.ran.Store(true)
			f()
		}
		select {
		case l.tasks <- run:
		case <-l.done:
		}
	})
	return t
}

type loopTask struct {
	timer   *time.Timer
	stopped atomic.Bool
	ran     atomic.Bool
}

func (t *loopTask) Stop() bool {
	t.timer.Stop()
	if t.ran.Load() {
		return false
	}
	return !t.stopped.Swap(true)
}
