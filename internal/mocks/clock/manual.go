// Package clock provides a manually advanced scheduler for tests.
package clock

import (
	"sort"
	"time"

	"terrimap/internal/domain/service"
)

// Manual is a service.Scheduler whose time only moves through Advance.
type Manual struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock   *Manual
	due     time.Duration
	seq     int
	fn      func()
	stopped bool
}

// NewManual creates a clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements service.Scheduler.
func (m *Manual) AfterFunc(delay time.Duration, fn func()) service.Timer {
	m.seq++
	timer := &manualTimer{clock: m, due: m.now + delay, seq: m.seq, fn: fn}
	m.timers = append(m.timers, timer)

	return timer
}

// Advance moves time forward and fires every timer that comes due, in due
// order, including timers scheduled by the callbacks themselves.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.due
		next.stopped = true
		next.fn()
	}
	m.now = target
}

// Pending returns the number of timers that have not fired or been stopped.
func (m *Manual) Pending() int {
	var n int
	for _, t := range m.timers {
		if !t.stopped {
			n++
		}
	}

	return n
}

func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	m.timers = live

	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due == m.timers[j].due {
			return m.timers[i].seq < m.timers[j].seq
		}

		return m.timers[i].due < m.timers[j].due
	})
	if len(m.timers) == 0 || m.timers[0].due > limit {
		return nil
	}

	return m.timers[0]
}

func (t *manualTimer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true

	return true
}
