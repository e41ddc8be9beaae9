package schedule

import "time"

// Manual is a Scheduler whose clock only moves when Advance is called.
// It is not safe for concurrent use.
type Manual struct {
	now   time.Time
	seq   int
	tasks []*manualTask
}

// NewManual returns a Manual scheduler starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now implements Scheduler.
func (m *Manual) Now() time.Time {
	return m.now
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	t := &manualTask{at: m.now.Add(d), seq: m.seq, f: f}
	m.seq++
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every task that comes due in
// time order. Tasks scheduled by those callbacks run too if they fall within
// the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next := m.next(target)
		if next == nil {
			break
		}
		m.now = next.at
		next.done = true
		next.f()
	}
	m.now = target
	m.compact()
}

// Pending returns the number of tasks that have neither run nor been stopped.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

func (m *Manual) next(limit time.Time) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.done || t.at.After(limit) {
			continue
		}
		if best == nil || t.at.Before(best.at) || (t.at.Equal(best.at) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.done {
			live = append(live, t)
		}
	}
	m.tasks = live
}

type manualTask struct {
	at   time.Time
	seq  int
	f    func()
	done bool
}

func (t *manualTask) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}
