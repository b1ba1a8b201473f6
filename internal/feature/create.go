package feature

import (
	"context"
	"log/slog"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GenerationManual marks territories drawn by hand.
const GenerationManual = "manual"

// OnCreate opens the detail form for every newly drawn feature. The target
// collection of a point is the location draw type active right now.
func (s *Synchronizer) OnCreate(features []*geojson.Feature) {
	for _, feature := range features {
		scratchID, ok := entity.ToolkitID(feature)
		if !ok || feature.Geometry == nil {
			s.logger.Warn("Ignoring created feature without id or geometry")
			continue
		}

		switch entity.ClassifyOrb(feature.Geometry) {
		case entity.EntityKindTerritory:
			s.drafts[scratchID] = draft{kind: entity.EntityKindTerritory, feature: cloneFeature(feature)}
			s.presenter.OpenTerritoryForm(service.TerritoryDraft{
				ScratchID: scratchID,
				Geometry:  feature.Geometry,
			})

		case entity.EntityKindLocation:
			point, _ := feature.Geometry.(orb.Point)
			locationType := s.machine.LocationDrawType()
			s.drafts[scratchID] = draft{
				kind:         entity.EntityKindLocation,
				feature:      cloneFeature(feature),
				locationType: locationType,
			}
			if toolkit := s.toolkit(); toolkit != nil {
				if err := toolkit.SetFeatureProperty(scratchID, entity.PropLocationType, locationType.String()); err != nil {
					s.logger.Warn("Failed to tag scratch point", slog.Any("error", err))
				}
			}
			s.presenter.OpenLocationForm(service.LocationDraft{
				ScratchID:    scratchID,
				Geometry:     point,
				LocationType: locationType,
			})

		default:
			s.logger.Warn("Refusing to persist drawn feature",
				slog.String("scratch_id", scratchID),
				slog.String("geometry_type", feature.Geometry.GeoJSONType()),
				slog.Any("error", domainerrors.ErrUnsupportedGeometry),
			)
			s.presenter.Notify(service.NoticeWarning, domainerrors.ErrUnsupportedGeometry.Message())
			s.discardScratch(scratchID)
		}
	}
}

// SubmitTerritory validates the form and creates the territory. The scratch
// feature is discarded whether or not the create succeeds; the refetch
// brings the persisted copy back.
func (s *Synchronizer) SubmitTerritory(form TerritoryForm) error {
	if err := s.validate.Struct(form); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	d, ok := s.takeDraft(form.ScratchID, entity.EntityKindTerritory)
	if !ok {
		return domainerrors.ErrValidationFailed.WithDetails("no drawn territory " + form.ScratchID)
	}

	input := &repository.TerritoryInput{
		Name:             form.Name,
		Description:      form.Description,
		Geometry:         d.feature.Geometry,
		Color:            form.Color,
		CustomerCount:    form.CustomerCount,
		GenerationMethod: GenerationManual,
	}

	s.dispatch(mutation{
		kind:   entity.EntityKindTerritory,
		action: service.MutationCreated,
		run: func(ctx context.Context) (string, error) {
			territory, err := s.territories.CreateTerritory(ctx, input)
			if err != nil {
				return "", err
			}

			return territory.ID, nil
		},
		invalidates: []string{entity.LayerTypeTerritories.String()},
	}, func(err error) {
		if err != nil {
			s.logger.Error("Failed to create territory, drawn geometry discarded",
				slog.String("name", input.Name),
				slog.Any("geometry", input.Geometry),
				slog.Any("error", err),
			)
			s.notifyError("Failed to create territory")

			return
		}
		s.presenter.Notify(service.NoticeSuccess, "Territory created")
	})

	return nil
}

// SubmitLocation validates the form and creates the location in the
// collection captured when the point was drawn.
func (s *Synchronizer) SubmitLocation(form LocationForm) error {
	if err := s.validate.Struct(form); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	d, ok := s.takeDraft(form.ScratchID, entity.EntityKindLocation)
	if !ok {
		return domainerrors.ErrValidationFailed.WithDetails("no drawn location " + form.ScratchID)
	}

	point, _ := d.feature.Geometry.(orb.Point)
	input := &repository.LocationInput{
		Name:       form.Name,
		Geometry:   point,
		Properties: form.Properties,
	}
	locationType := d.locationType

	s.dispatch(mutation{
		kind:         entity.EntityKindLocation,
		action:       service.MutationCreated,
		locationType: locationType,
		run: func(ctx context.Context) (string, error) {
			location, err := s.locations.CreateLocation(ctx, locationType, input)
			if err != nil {
				return "", err
			}

			return location.ID, nil
		},
		invalidates: []string{locationType.LayerType().String()},
	}, func(err error) {
		if err != nil {
			s.logger.Error("Failed to create location, drawn point discarded",
				slog.String("name", input.Name),
				slog.String("location_type", locationType.String()),
				slog.Any("geometry", input.Geometry),
				slog.Any("error", err),
			)
			s.notifyError("Failed to create location")

			return
		}
		s.presenter.Notify(service.NoticeSuccess, "Location created")
	})

	return nil
}

// CancelForm drops a drawn feature whose form was dismissed.
func (s *Synchronizer) CancelForm(scratchID string) {
	if _, ok := s.drafts[scratchID]; !ok {
		return
	}
	delete(s.drafts, scratchID)
	s.discardScratch(scratchID)
}

// takeDraft removes the draft and its scratch feature.
func (s *Synchronizer) takeDraft(scratchID string, kind entity.EntityKind) (draft, bool) {
	d, ok := s.drafts[scratchID]
	if !ok || d.kind != kind {
		return draft{}, false
	}
	delete(s.drafts, scratchID)
	s.discardScratch(scratchID)

	return d, true
}
