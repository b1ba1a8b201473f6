package feature

import (
	"context"
	"log/slog"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/service"

	"github.com/paulmach/orb/geojson"
)

// OnDelete deletes removed territories remotely. Points and other geometry
// are only removed locally; the next load brings them back.
func (s *Synchronizer) OnDelete(features []*geojson.Feature) {
	for _, feature := range features {
		if feature == nil || feature.Geometry == nil {
			continue
		}

		if scratchID, ok := entity.ToolkitID(feature); ok {
			if _, isDraft := s.drafts[scratchID]; isDraft {
				delete(s.drafts, scratchID)
				continue
			}
		}

		if entity.ClassifyOrb(feature.Geometry) != entity.EntityKindTerritory {
			s.logger.Warn("Remote deletion is only supported for territories",
				slog.String("geometry_type", feature.Geometry.GeoJSONType()),
			)
			s.presenter.Notify(service.NoticeWarning, "Locations cannot be deleted from the map")

			continue
		}

		id, ok := entity.PersistedID(feature)
		if !ok {
			s.logger.Warn("Ignoring delete of territory without persisted id",
				slog.Any("error", domainerrors.ErrMissingJoinKey),
			)
			continue
		}

		s.deleteTerritory(id)
	}
}

func (s *Synchronizer) deleteTerritory(id string) {
	delete(s.originals, id)
	if session, ok := s.machine.Editing(); ok && session.FeatureID == id {
		s.presenter.HideEditPrompt()
		if err := s.machine.EndEdit(); err != nil {
			s.logger.Warn("Failed to close edit of deleted territory", slog.Any("error", err))
		}
	}

	s.dispatch(mutation{
		kind:   entity.EntityKindTerritory,
		action: service.MutationDeleted,
		run: func(ctx context.Context) (string, error) {
			return id, s.territories.DeleteTerritory(ctx, id)
		},
		invalidates: []string{entity.LayerTypeTerritories.String()},
	}, func(err error) {
		if err != nil {
			s.logger.Error("Failed to delete territory",
				slog.String("territory_id", id),
				slog.Any("error", err),
			)
			s.notifyError("Failed to delete territory")

			return
		}
		s.presenter.Notify(service.NoticeSuccess, "Territory deleted")
	})
}
