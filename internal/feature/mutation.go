package feature

import (
	"context"
	"log/slog"

	deliverycontext "terrimap/internal/delivery/context"
	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"
	"terrimap/internal/errors"

	"github.com/google/uuid"
)

// mutation is one remote change issued by the synchronizer.
type mutation struct {
	kind         entity.EntityKind
	action       service.MutationAction
	locationType entity.LocationType
	// run performs the remote call and returns the affected entity id.
	run         func(ctx context.Context) (string, error)
	invalidates []string
}

// dispatch runs m off the loop. On success the affected queries are
// invalidated and a mutation event is published; done always runs on the
// loop with the mutation error.
func (s *Synchronizer) dispatch(m mutation, done func(err error)) {
	s.dispatcher.Dispatch(func(ctx context.Context) error {
		var entityID string
		err := s.mutator.Mutate(ctx, func(ctx context.Context) error {
			id, err := m.run(ctx)
			entityID = id

			return err
		}, m.invalidates...)
		if err != nil {
			return errors.Wrapf(err, "%s %s", m.action, m.kind)
		}

		s.publish(ctx, m, entityID)

		return nil
	}, done)
}

// publish announces a successful mutation. Publishing is best effort.
func (s *Synchronizer) publish(ctx context.Context, m mutation, entityID string) {
	if s.publisher == nil {
		return
	}

	event := &service.FeatureMutationEvent{
		EventID:      uuid.NewString(),
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		SessionID:    s.sessionID,
		Kind:         string(m.kind),
		Action:       m.action,
		EntityID:     entityID,
		LocationType: m.locationType.String(),
	}
	if err := s.publisher.PublishMutationEvent(ctx, event); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Warn("Failed to publish mutation event",
			slog.String("entity_id", entityID),
			slog.String("action", string(m.action)),
			slog.Any("error", err),
		)
	}
}
