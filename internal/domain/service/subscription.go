package service

import "sync"

// Subscription is an active listener registration. Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

// SubscriptionFunc adapts a function to Subscription and guarantees it runs
// at most once.
type SubscriptionFunc struct {
	once sync.Once
	fn   func()
}

// NewSubscription wraps fn as a Subscription.
func NewSubscription(fn func()) *SubscriptionFunc {
	return &SubscriptionFunc{fn: fn}
}

// Unsubscribe runs the release function once.
func (s *SubscriptionFunc) Unsubscribe() {
	s.once.Do(func() {
		if s.fn != nil {
			s.fn()
		}
	})
}
