// Package dispatch provides a deferred dispatcher for tests.
package dispatch

import (
	"context"
)

// Queue is a service.Dispatcher that holds work until Flush, which makes
// "request still in flight" states observable.
type Queue struct {
	pending []job
	ran     int
}

type job struct {
	work func(ctx context.Context) error
	done func(err error)
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Dispatch implements service.Dispatcher.
func (q *Queue) Dispatch(work func(ctx context.Context) error, done func(err error)) {
	q.pending = append(q.pending, job{work: work, done: done})
}

// Len returns the number of jobs not yet run.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Ran returns the number of jobs executed so far.
func (q *Queue) Ran() int {
	return q.ran
}

// Flush runs queued jobs, including jobs queued by completion callbacks.
func (q *Queue) Flush() {
	for len(q.pending) > 0 {
		next := q.pending[0]
		q.pending = q.pending[1:]
		q.ran++

		err := next.work(context.Background())
		if next.done != nil {
			next.done(err)
		}
	}
}
