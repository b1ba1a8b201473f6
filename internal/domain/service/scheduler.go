package service

import (
	"context"
	"time"
)

// Timer is a pending scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay on the owner's event loop.
type Scheduler interface {
	AfterFunc(delay time.Duration, fn func()) Timer
}

// Dispatcher runs blocking work off the event loop and delivers the outcome
// back onto it. There is no cancellation of dispatched work.
type Dispatcher interface {
	Dispatch(work func(ctx context.Context) error, done func(err error))
}
