// Package schedule provides one-shot scheduled tasks with cancellation
// handles, plus a manually advanced clock for deterministic tests.
package schedule

import (
	"sync"
	"time"
)

// Task is a handle to a scheduled callback.
type Task interface {
	// Cancel prevents the callback from running. It reports whether the
	// task was still pending.
	Cancel() bool
}

// Scheduler runs f once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// Clock schedules tasks on the wall clock.
type Clock struct{}

func (Clock) AfterFunc(d time.Duration, f func()) Task {
	return timerTask{t: time.AfterFunc(d, f)}
}

type timerTask struct {
	t *time.Timer
}

func (t timerTask) Cancel() bool {
	return t.t.Stop()
}

// Manual is a simulated clock. Tasks only run inside Advance, on the
// calling goroutine.
type Manual struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	m   *Manual
	due time.Duration
	seq uint64
	f   func()
}

// NewManual returns a Manual clock at elapsed time zero.
func NewManual() *Manual {
	return &Manual{}
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTask{m: m, due: m.now + d, seq: m.seq, f: f}
	m.tasks = append(m.tasks, t)
	return t
}

func (t *manualTask) Cancel() bool {
	return t.m.remove(t)
}

// Advance moves the clock forward by d, running every task that falls due
// in order of due time. Ties run in scheduling order. Tasks scheduled by a
// callback run too if they fall due inside the window.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.earliest(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.removeLocked(next)
		m.now = next.due
		m.mu.Unlock()

		next.f()
	}
}

// Elapsed reports how far the clock has been advanced.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending reports the number of tasks that have neither run nor been
// cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *Manual) earliest(target time.Duration) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.due > target {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (m *Manual) remove(t *manualTask) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(t)
}

func (m *Manual) removeLocked(t *manualTask) bool {
	for i, pending := range m.tasks {
		if pending == t {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return true
		}
	}
	return false
}
