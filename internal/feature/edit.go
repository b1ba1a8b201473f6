package feature

import (
	"context"
	"log/slog"
	"slices"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/domain/service"
	"terrimap/internal/draw"
	"terrimap/internal/prompt"

	"github.com/paulmach/orb/geojson"
)

// OnUpdate opens an edit for a changed persisted feature instead of saving
// it. Features without properties.id are skipped.
func (s *Synchronizer) OnUpdate(features []*geojson.Feature) {
	for _, feature := range features {
		id, ok := entity.PersistedID(feature)
		if !ok {
			s.logger.Warn("Ignoring update of feature without persisted id",
				slog.Any("error", domainerrors.ErrMissingJoinKey),
			)
			continue
		}

		original, ok := s.originals[id]
		if !ok {
			s.logger.Warn("Ignoring update of feature that was never loaded",
				slog.String("feature_id", id),
				slog.Any("error", domainerrors.ErrMissingJoinKey),
			)
			continue
		}

		session, editing := s.machine.Editing()
		if !editing || session.FeatureID != id {
			locationType, _ := entity.FeatureLocationType(original)
			session = &draw.EditingSession{
				FeatureID:    id,
				Kind:         entity.ClassifyOrb(original.Geometry),
				LocationType: locationType,
				Original:     original,
			}
		}
		if session.Pending {
			s.logger.Debug("Ignoring update while the save is in flight", slog.String("feature_id", id))
			continue
		}
		session.Edited = cloneFeature(feature)

		if err := s.machine.BeginEdit(session); err != nil {
			s.logger.Warn("Edit rejected, another edit is open",
				slog.String("feature_id", id),
				slog.Any("error", err),
			)
			s.presenter.Notify(service.NoticeWarning, "Save or cancel the current edit first")
			s.restore(original)
		}
	}
}

// RequestConfirm shows the save/cancel prompt when the user right-clicks,
// or clicks away from the feature under edit. It reports whether the prompt
// was shown.
func (s *Synchronizer) RequestConfirm(event service.MapEvent) bool {
	session, ok := s.machine.Editing()
	if !ok || session.Pending {
		return false
	}

	switch event.Type {
	case service.MapEventContextMenu:
	case service.MapEventClick:
		if slices.Contains(event.FeatureIDs, session.FeatureID) {
			return false
		}
	default:
		return false
	}

	return s.showPrompt(session)
}

// RepositionPrompt moves a visible prompt after the viewport changed.
func (s *Synchronizer) RepositionPrompt() {
	session, ok := s.machine.Editing()
	if !ok || !session.Prompted || session.Pending {
		return
	}
	s.showPrompt(session)
}

func (s *Synchronizer) showPrompt(session *draw.EditingSession) bool {
	anchor, err := prompt.Anchor(s.projector, session.Edited.Geometry)
	if err != nil {
		s.logger.Warn("Failed to position edit prompt", slog.Any("error", err))
		return false
	}
	session.Anchor = anchor
	session.Prompted = true
	s.presenter.ShowEditPrompt(service.EditPrompt{FeatureID: session.FeatureID, Anchor: anchor})

	return true
}

// Save persists the open edit. A second call while the first is in flight
// does nothing. On failure the edit stays open for another try.
func (s *Synchronizer) Save() error {
	session, ok := s.machine.Editing()
	if !ok {
		return domainerrors.ErrNoEditSession
	}
	if session.Pending {
		s.logger.Debug("Save ignored, already saving", slog.String("feature_id", session.FeatureID))
		return nil
	}

	kind := entity.ClassifyOrb(session.Edited.Geometry)
	if kind == entity.EntityKindUnsupported {
		s.presenter.Notify(service.NoticeError, domainerrors.ErrUnsupportedGeometry.Message())
		return domainerrors.ErrUnsupportedGeometry.WithDetails(session.FeatureID)
	}

	saved := cloneFeature(session.Edited)
	patch := &repository.GeometryPatch{
		Geometry:  saved.Geometry,
		UpdatedAt: s.now().UTC(),
	}

	m := mutation{
		kind:   kind,
		action: service.MutationUpdated,
	}
	id := session.FeatureID
	if kind == entity.EntityKindTerritory {
		m.run = func(ctx context.Context) (string, error) {
			_, err := s.territories.UpdateTerritoryGeometry(ctx, id, patch)
			return id, err
		}
		m.invalidates = []string{entity.LayerTypeTerritories.String()}
	} else {
		locationType := session.LocationType
		if !locationType.IsValid() {
			return domainerrors.ErrValidationFailed.WithDetails("location " + id + " has no location type")
		}
		m.locationType = locationType
		m.run = func(ctx context.Context) (string, error) {
			_, err := s.locations.UpdateLocationGeometry(ctx, locationType, id, patch)
			return id, err
		}
		m.invalidates = []string{locationType.LayerType().String()}
	}

	session.Pending = true
	session.Prompted = false
	s.presenter.HideEditPrompt()

	s.dispatch(m, func(err error) {
		session.Pending = false
		if err != nil {
			s.logger.Error("Failed to save edit",
				slog.String("feature_id", id),
				slog.Any("error", err),
			)
			s.notifyError("Failed to save changes")

			return
		}

		s.originals[id] = saved
		if current, ok := s.machine.Editing(); ok && current == session {
			if err := s.machine.EndEdit(); err != nil {
				s.logger.Warn("Failed to reset mode after save", slog.Any("error", err))
			}
		}
		s.presenter.Notify(service.NoticeSuccess, "Changes saved")
		s.resumeDeferredLoad()
	})

	return nil
}

// Cancel discards the open edit locally; nothing is sent to the remote.
func (s *Synchronizer) Cancel() error {
	session, ok := s.machine.Editing()
	if !ok {
		return domainerrors.ErrNoEditSession
	}
	if session.Pending {
		return domainerrors.ErrEditInProgress.WithDetails("save in flight")
	}

	s.restore(session.Original)
	s.presenter.HideEditPrompt()
	if err := s.machine.EndEdit(); err != nil {
		s.logger.Warn("Failed to reset mode after cancel", slog.Any("error", err))
	}
	s.resumeDeferredLoad()

	return nil
}

// restore puts the persisted geometry back into the toolkit.
func (s *Synchronizer) restore(original *geojson.Feature) {
	toolkit := s.toolkit()
	if toolkit == nil || original == nil {
		return
	}
	if _, err := toolkit.Add(cloneFeature(original)); err != nil {
		s.logger.Warn("Failed to restore original geometry", slog.Any("error", err))
	}
}
