package feature

import (
	"log/slog"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/service"

	"github.com/paulmach/orb/geojson"
)

// Refresh takes the latest readiness. When everything is ready and the
// toolkit does not yet hold this data snapshot, a bulk load is scheduled
// after the settle delay. A load that comes due during an open edit waits
// for the edit to end.
func (s *Synchronizer) Refresh(readiness Readiness) {
	s.readiness = readiness

	if !readiness.Ready() {
		s.Close()
		s.loaded = false

		return
	}

	key := readiness.key()
	if s.loaded && key == s.loadedKey {
		return
	}
	if s.pendingLoad != nil && key == s.pendingKey {
		return
	}

	s.Close()
	s.pendingKey = key
	s.pendingLoad = s.scheduler.AfterFunc(s.settleDelay, func() {
		s.pendingLoad = nil
		s.load()
	})
}

// load flushes the toolkit and re-adds one feature per persisted entity.
func (s *Synchronizer) load() {
	readiness := s.readiness
	toolkit := s.toolkit()
	if !readiness.Ready() || toolkit == nil {
		return
	}
	if _, editing := s.machine.Editing(); editing {
		s.loadDeferred = true
		s.logger.Debug("Bulk load deferred until the edit ends")

		return
	}
	s.loadDeferred = false

	if err := toolkit.DeleteAll(); err != nil {
		s.logger.Error("Failed to clear toolkit features", slog.Any("error", err))
		return
	}
	s.originals = make(map[string]*geojson.Feature)

	var added, skipped int
	batches := []struct {
		source       *geojson.FeatureCollection
		locationType entity.LocationType
	}{
		{source: readiness.Territories.Data},
		{source: readiness.CurrentLocations.Data, locationType: entity.LocationTypeCurrent},
		{source: readiness.PotentialLocations.Data, locationType: entity.LocationTypePotential},
	}
	for _, batch := range batches {
		if batch.source == nil {
			continue
		}
		for _, feature := range batch.source.Features {
			if s.addPersisted(toolkit, feature, batch.locationType) {
				added++
			} else {
				skipped++
			}
		}
	}

	restored := s.restoreDrafts(toolkit)

	s.loaded = true
	s.loadedKey = readiness.key()

	if err := s.machine.OnSelectionChange(nil); err != nil {
		s.logger.Warn("Failed to reset selection after load", slog.Any("error", err))
	}

	s.logger.Info("Toolkit features loaded",
		slog.Int("added", added),
		slog.Int("skipped", skipped),
		slog.Int("drafts", restored),
	)
}

// restoreDrafts puts back the drawn features whose forms are still open.
func (s *Synchronizer) restoreDrafts(toolkit service.DrawToolkit) int {
	var restored int
	for scratchID, d := range s.drafts {
		clone := cloneFeature(d.feature)
		clone.ID = scratchID
		if d.locationType != "" {
			clone.Properties[entity.PropLocationType] = d.locationType.String()
		}
		if _, err := toolkit.Add(clone); err != nil {
			s.logger.Warn("Failed to restore drawn feature",
				slog.String("scratch_id", scratchID),
				slog.Any("error", err),
			)

			continue
		}
		restored++
	}

	return restored
}

// addPersisted adds one persisted feature, tagged with its id and location
// type. Failures are logged and reported as false.
func (s *Synchronizer) addPersisted(toolkit service.DrawToolkit, feature *geojson.Feature, locationType entity.LocationType) bool {
	if feature == nil || feature.Geometry == nil {
		return false
	}

	id, ok := entity.PersistedID(feature)
	if !ok {
		id, ok = entity.ToolkitID(feature)
	}
	if !ok {
		s.logger.Warn("Skipping feature without id", slog.Any("error", domainerrors.ErrMissingJoinKey))
		return false
	}

	clone := cloneFeature(feature)
	clone.ID = id
	clone.Properties[entity.PropID] = id
	if locationType != "" {
		clone.Properties[entity.PropLocationType] = locationType.String()
	}

	if _, err := toolkit.Add(clone); err != nil {
		s.logger.Warn("Skipping feature the toolkit rejected",
			slog.String("feature_id", id),
			slog.Any("error", err),
		)

		return false
	}
	s.originals[id] = clone

	return true
}

// resumeDeferredLoad runs a load that waited for an edit to end.
func (s *Synchronizer) resumeDeferredLoad() {
	if !s.loadDeferred {
		return
	}
	s.loadDeferred = false
	s.loaded = false
	s.Refresh(s.readiness)
}

// notifyError shows a toast for a failed user action.
func (s *Synchronizer) notifyError(message string) {
	s.presenter.Notify(service.NoticeError, message)
}
