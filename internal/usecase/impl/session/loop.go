package session

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	deliverycontext "terrimap/internal/delivery/context"
	"terrimap/internal/domain/service"
	"terrimap/internal/errors"

	"github.com/google/uuid"
)

// eventLoop is what the engine needs from its event loop.
type eventLoop interface {
	service.Scheduler
	service.Dispatcher

	// Post queues fn for the loop goroutine. It reports false once the loop
	// is closed.
	Post(fn func()) bool
}

// loop runs posted callbacks one at a time on the goroutine calling run.
// Timer callbacks and dispatch completions are posted like any other event,
// so everything the engine touches stays on that goroutine.
type loop struct {
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	closing chan struct{}
	once    sync.Once
}

var _ eventLoop = (*loop)(nil)

func newLoop(logger *slog.Logger, timeout time.Duration) *loop {
	return &loop{
		logger:  logger,
		timeout: timeout,
		wake:    make(chan struct{}, 1),
		closing: make(chan struct{}),
	}
}

// Post implements eventLoop.
func (l *loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}

	return true
}

// Close stops run after the callback in progress. Queued callbacks are dropped.
func (l *loop) Close() {
	l.once.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
		close(l.closing)
	})
}

// run drains the queue until ctx is done or the loop is closed. afterTurn
// runs once the queue is empty after each wake-up.
func (l *loop) run(ctx context.Context, afterTurn func()) error {
	for {
		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-l.closing:
			return nil
		case <-l.wake:
		}

		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			l.invoke(fn)
		}
		if afterTurn != nil {
			l.invoke(afterTurn)
		}
	}
}

func (l *loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]

	return fn, true
}

// invoke keeps a panicking handler from taking the session down.
func (l *loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("Event handler panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	fn()
}

// loopTimer is only touched on the loop goroutine.
type loopTimer struct {
	timer *time.Timer
	done  bool
}

// AfterFunc implements service.Scheduler. fn runs on the loop.
func (l *loop) AfterFunc(delay time.Duration, fn func()) service.Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(delay, func() {
		l.Post(func() {
			if t.done {
				return
			}
			t.done = true
			fn()
		})
	})

	return t
}

func (t *loopTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.timer.Stop()

	return true
}

// Dispatch implements service.Dispatcher. work runs on its own goroutine
// under a fresh request id and the operation timeout; done is posted back.
// In-flight work is not cancelled when the session closes.
func (l *loop) Dispatch(work func(ctx context.Context) error, done func(err error)) {
	requestID := uuid.NewString()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
		defer cancel()

		ctx = deliverycontext.WithRequestID(ctx, requestID)
		ctx = deliverycontext.WithLogger(ctx, l.logger.With(slog.String("request_id", requestID)))

		err := l.safeWork(ctx, work)
		if done == nil {
			return
		}
		if !l.Post(func() { done(err) }) {
			l.logger.Debug("Dropped completion of closed session", slog.String("request_id", requestID))
		}
	}()
}

func (l *loop) safeWork(ctx context.Context, work func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("dispatched work panicked: %v", r)
		}
	}()

	return work(ctx)
}
