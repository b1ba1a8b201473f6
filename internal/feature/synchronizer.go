// Package feature keeps the drawing toolkit's local features and the
// persisted territories and locations in step: bulk load, create on draw,
// confirmed geometry edits and deletes.
package feature

import (
	"context"
	"log/slog"
	"time"

	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/repository"
	"terrimap/internal/domain/service"
	"terrimap/internal/draw"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb/geojson"
)

// DefaultSettleDelay is the wait between readiness and the bulk load, which
// keeps the load clear of the toolkit's own attach lifecycle.
const DefaultSettleDelay = time.Second

// Mutator runs a remote mutation and invalidates the given query keys when
// it succeeds.
type Mutator interface {
	Mutate(ctx context.Context, fn func(ctx context.Context) error, invalidates ...string) error
}

// Deps are the collaborators of a Synchronizer.
type Deps struct {
	Logger      *slog.Logger
	Machine     *draw.Machine
	Presenter   service.Presenter
	Projector   service.Projector
	Scheduler   service.Scheduler
	Dispatcher  service.Dispatcher
	Mutator     Mutator
	Territories repository.TerritoryRepository
	Locations   repository.LocationRepository
	Publisher   service.EventPublisher
	SessionID   string
	SettleDelay time.Duration
	Now         func() time.Time
}

// draft is a drawn, not yet submitted feature.
type draft struct {
	kind         entity.EntityKind
	feature      *geojson.Feature
	locationType entity.LocationType
}

// Synchronizer bridges toolkit features and persisted entities. Every method
// runs on the session event loop; remote calls go through the dispatcher and
// their completions come back on the loop.
type Synchronizer struct {
	logger      *slog.Logger
	machine     *draw.Machine
	presenter   service.Presenter
	projector   service.Projector
	scheduler   service.Scheduler
	dispatcher  service.Dispatcher
	mutator     Mutator
	territories repository.TerritoryRepository
	locations   repository.LocationRepository
	publisher   service.EventPublisher
	validate    *validator.Validate
	sessionID   string
	settleDelay time.Duration
	now         func() time.Time

	readiness    Readiness
	loaded       bool
	loadedKey    loadKey
	pendingLoad  service.Timer
	pendingKey   loadKey
	loadDeferred bool

	// originals holds the persisted copy of every loaded feature by id.
	originals map[string]*geojson.Feature
	drafts    map[string]draft
}

// NewSynchronizer creates a synchronizer.
func NewSynchronizer(deps Deps) *Synchronizer {
	settleDelay := deps.SettleDelay
	if settleDelay <= 0 {
		settleDelay = DefaultSettleDelay
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	s := &Synchronizer{
		logger:      deps.Logger.With(slog.String("component", "feature")),
		machine:     deps.Machine,
		presenter:   deps.Presenter,
		projector:   deps.Projector,
		scheduler:   deps.Scheduler,
		dispatcher:  deps.Dispatcher,
		mutator:     deps.Mutator,
		territories: deps.Territories,
		locations:   deps.Locations,
		publisher:   deps.Publisher,
		validate:    newValidator(),
		sessionID:   deps.SessionID,
		settleDelay: settleDelay,
		now:         now,
		originals:   make(map[string]*geojson.Feature),
		drafts:      make(map[string]draft),
	}
	deps.Machine.OnTrash(s.OnDelete)

	return s
}

// Loaded reports whether the toolkit holds the current persisted snapshot.
func (s *Synchronizer) Loaded() bool {
	return s.loaded
}

// Saving reports whether an edit save is in flight.
func (s *Synchronizer) Saving() bool {
	session, ok := s.machine.Editing()
	return ok && session.Pending
}

// Close stops the pending load.
func (s *Synchronizer) Close() {
	if s.pendingLoad != nil {
		s.pendingLoad.Stop()
		s.pendingLoad = nil
	}
}

func (s *Synchronizer) toolkit() service.DrawToolkit {
	return s.machine.Toolkit()
}

// discardScratch removes a drawn feature from the toolkit.
func (s *Synchronizer) discardScratch(scratchID string) {
	toolkit := s.toolkit()
	if toolkit == nil {
		return
	}
	if err := toolkit.Delete(scratchID); err != nil {
		s.logger.Warn("Failed to discard scratch feature",
			slog.String("scratch_id", scratchID),
			slog.Any("error", err),
		)
	}
}

func cloneFeature(feature *geojson.Feature) *geojson.Feature {
	clone := geojson.NewFeature(feature.Geometry)
	clone.ID = feature.ID
	clone.BBox = feature.BBox
	for key, value := range feature.Properties {
		clone.Properties[key] = value
	}

	return clone
}
