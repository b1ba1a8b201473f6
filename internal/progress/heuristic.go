// Package progress drives the busy indicator of the map editor.
//
// The value it publishes is an approximation of activity, not a measurement:
// it starts at 10 when any tracked operation begins, creeps up by 5 every
// 500ms while anything is still in flight and stops at 95. Only the moment
// all operations finish is real, at which point it jumps to 100 and hides
// 500ms later. Nothing about the number says how far along a request is.
package progress

import (
	"time"

	"terrimap/internal/domain/service"
)

const (
	StartValue   = 10
	Step         = 5
	CapValue     = 95
	DoneValue    = 100
	TickInterval = 500 * time.Millisecond
	HideDelay    = 500 * time.Millisecond
)

// PublishFunc receives every change of the indicator.
type PublishFunc func(value int, visible bool)

// Heuristic turns an aggregate busy flag into a simulated progress value.
// It is not safe for concurrent use; the scheduler must call back on the
// same event loop that calls SetBusy.
type Heuristic struct {
	scheduler service.Scheduler
	publish   PublishFunc

	busy    bool
	value   int
	visible bool
	ticker  service.Timer
	hider   service.Timer
}

// NewHeuristic creates a hidden indicator.
func NewHeuristic(scheduler service.Scheduler, publish PublishFunc) *Heuristic {
	if publish == nil {
		publish = func(int, bool) {}
	}

	return &Heuristic{
		scheduler: scheduler,
		publish:   publish,
	}
}

// Value returns the last published value and visibility.
func (h *Heuristic) Value() (int, bool) {
	return h.value, h.visible
}

// SetBusy reports whether any tracked operation is in flight.
func (h *Heuristic) SetBusy(busy bool) {
	if busy == h.busy {
		return
	}
	h.busy = busy

	if busy {
		stop(&h.hider)
		h.set(StartValue, true)
		h.scheduleTick()

		return
	}

	stop(&h.ticker)
	h.set(DoneValue, true)
	h.hider = h.scheduler.AfterFunc(HideDelay, func() {
		h.hider = nil
		if h.busy {
			return
		}
		h.set(0, false)
	})
}

// Stop cancels pending timers without publishing.
func (h *Heuristic) Stop() {
	stop(&h.ticker)
	stop(&h.hider)
}

func (h *Heuristic) scheduleTick() {
	h.ticker = h.scheduler.AfterFunc(TickInterval, func() {
		h.ticker = nil
		if !h.busy {
			return
		}
		h.set(min(h.value+Step, CapValue), true)
		h.scheduleTick()
	})
}

func (h *Heuristic) set(value int, visible bool) {
	if value == h.value && visible == h.visible {
		return
	}
	h.value = value
	h.visible = visible
	h.publish(value, visible)
}

func stop(timer *service.Timer) {
	if *timer != nil {
		(*timer).Stop()
		*timer = nil
	}
}
