package service

import (
	"context"
)

// MutationAction is the kind of persisted change.
type MutationAction string

const (
	MutationCreated MutationAction = "created"
	MutationUpdated MutationAction = "updated"
	MutationDeleted MutationAction = "deleted"
)

// FeatureMutationEvent announces a successful mutation so that other
// dashboards can invalidate their caches.
type FeatureMutationEvent struct {
	EventID      string         `json:"event_id"`
	RequestID    string         `json:"request_id,omitempty"` // For distributed tracing
	SessionID    string         `json:"session_id,omitempty"`
	Kind         string         `json:"kind"` // territory or location
	Action       MutationAction `json:"action"`
	EntityID     string         `json:"entity_id"`
	LocationType string         `json:"location_type,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishMutationEvent publishes a feature mutation event
	PublishMutationEvent(ctx context.Context, event *FeatureMutationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
