package session

import (
	"time"

	"github.com/sprite-ai/callguard/internal/schedule"
)

const tickInterval = time.Second

// countdown ticks down once per second and stops at zero.
type countdown struct {
	sched     schedule.Scheduler
	remaining int
	task      schedule.Task
	onTick    func()
}

func (c *countdown) start(seconds int) {
	c.stop()
	c.remaining = seconds
	c.arm()
}

func (c *countdown) arm() {
	if c.remaining <= 0 {
		return
	}
	c.task = c.sched.AfterFunc(tickInterval, c.tick)
}

func (c *countdown) tick() {
	c.task = nil
	if c.remaining > 0 {
		c.remaining--
	}
	c.arm()
	c.onTick()
}

func (c *countdown) stop() {
	if c.task != nil {
		c.task.Stop()
		c.task = nil
	}
}

func (c *countdown) reset() {
	c.stop()
	c.remaining = 0
}

func (c *countdown) running() bool {
	return c.task != nil
}

// stopwatch counts elapsed seconds while running.
type stopwatch struct {
	sched   schedule.Scheduler
	elapsed int
	task    schedule.Task
	onTick  func()
}

func (w *stopwatch) start(from int) {
	w.stop()
	w.elapsed = from
	w.task = w.sched.AfterFunc(tickInterval, w.tick)
}

func (w *stopwatch) tick() {
	w.elapsed++
	w.task = w.sched.AfterFunc(tickInterval, w.tick)
	w.onTick()
}

func (w *stopwatch) stop() {
	if w.task != nil {
		w.task.Stop()
		w.task = nil
	}
}

// ack holds a value that clears itself after a delay. Setting it again
// restarts the delay.
type ack struct {
	sched    schedule.Scheduler
	value    string
	task     schedule.Task
	onChange func()
}

func (a *ack) set(value string, d time.Duration) {
	a.clear()
	a.value = value
	a.task = a.sched.AfterFunc(d, func() {
		a.task = nil
		a.value = ""
		a.onChange()
	})
}

func (a *ack) clear() {
	if a.task != nil {
		a.task.Stop()
		a.task = nil
	}
	a.value = ""
}
