package impl

import (
	"context"
	"log/slog"
	"time"

	"terrimap/internal/analytics"
	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/errors"
	"terrimap/internal/infra/metrics"
	"terrimap/internal/infra/query"
	"terrimap/internal/layer"
	"terrimap/internal/usecase"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/fx"
)

// LayerServiceParams holds dependencies for the layer service, injected by Fx
type LayerServiceParams struct {
	fx.In

	Logger      *slog.Logger
	Hub         *query.Hub
	Territories repository.TerritoryRepository
	Locations   repository.LocationRepository
	References  repository.ReferenceLayerRepository
}

type layerService struct {
	logger      *slog.Logger
	query       *query.Client
	territories repository.TerritoryRepository
	locations   repository.LocationRepository
	references  repository.ReferenceLayerRepository
}

// NewLayerService creates a new layer service instance
func NewLayerService(params LayerServiceParams) usecase.LayerUsecase {
	return &layerService{
		logger:      params.Logger.With(slog.String("component", "layers")),
		query:       query.NewClient(params.Hub),
		territories: params.Territories,
		locations:   params.Locations,
		references:  params.References,
	}
}

// Fetcher returns the remote loader of a source layer
func (s *layerService) Fetcher(layerType entity.LayerType) (usecase.Fetcher, bool) {
	switch layerType {
	case entity.LayerTypeTerritories:
		return s.fetchTerritories, true
	case entity.LayerTypeCurrentLocations:
		return s.locationFetcher(entity.LocationTypeCurrent), true
	case entity.LayerTypePotentialLocations:
		return s.locationFetcher(entity.LocationTypePotential), true
	case entity.LayerTypeBoundaries, entity.LayerTypeRivers, entity.LayerTypeRoads:
		return func(ctx context.Context) (*geojson.FeatureCollection, error) {
			return s.references.ReferenceLayer(ctx, layerType)
		}, true
	default:
		return nil, false
	}
}

// Collection reads one source collection through the query cache
func (s *layerService) Collection(ctx context.Context, layerType entity.LayerType) (*geojson.FeatureCollection, error) {
	fetcher, ok := s.Fetcher(layerType)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrUnknownLayer.WithDetails(layerType.String()))
	}

	return s.query.Fetch(ctx, layerType.String(), query.Fetcher(fetcher))
}

// GetLayers hydrates the default layer stack. Sources that fail to load are
// reported with an error status and empty data instead of failing the call.
func (s *layerService) GetLayers(ctx context.Context) ([]entity.Layer, error) {
	store := layer.NewStore(nil)

	for _, layerType := range entity.LayerTypes {
		if layerType.IsDerived() {
			continue
		}

		fc, err := s.Collection(ctx, layerType)
		if err != nil {
			if ctx.Err() != nil {
				return nil, errors.WithStack(ctx.Err())
			}
			s.logger.Warn("Layer source failed to load",
				slog.String("layer", layerType.String()),
				slog.Any("error", err),
			)
			store.SetSourceError(layerType)

			continue
		}
		store.SetSource(layerType, fc)
	}

	return store.Layers(), nil
}

// PopulationAnalysis aggregates population of all locations per boundary
func (s *layerService) PopulationAnalysis(ctx context.Context) (*geojson.FeatureCollection, error) {
	locations, boundaries, err := s.analysisInputs(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := analytics.PopulationAnalysis(locations, boundaries)
	metrics.AnalyticsDurationMs.WithLabelValues("population").Observe(float64(time.Since(start).Milliseconds()))

	return result, nil
}

// ExpansionAnalysis scores and ranks every boundary
func (s *layerService) ExpansionAnalysis(ctx context.Context) (*geojson.FeatureCollection, error) {
	locations, boundaries, err := s.analysisInputs(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := analytics.ExpansionAnalysis(locations, boundaries)
	metrics.AnalyticsDurationMs.WithLabelValues("expansion").Observe(float64(time.Since(start).Milliseconds()))

	return result, nil
}

// analysisInputs returns current and potential locations merged, plus boundaries.
func (s *layerService) analysisInputs(ctx context.Context) (locations, boundaries *geojson.FeatureCollection, err error) {
	locations = geojson.NewFeatureCollection()
	for _, layerType := range []entity.LayerType{entity.LayerTypeCurrentLocations, entity.LayerTypePotentialLocations} {
		fc, err := s.Collection(ctx, layerType)
		if err != nil {
			return nil, nil, err
		}
		locations.Features = append(locations.Features, fc.Features...)
	}

	boundaries, err = s.Collection(ctx, entity.LayerTypeBoundaries)
	if err != nil {
		return nil, nil, err
	}

	return locations, boundaries, nil
}

func (s *layerService) fetchTerritories(ctx context.Context) (*geojson.FeatureCollection, error) {
	territories, err := s.territories.ListTerritories(ctx)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, territory := range territories {
		fc.Append(territory.Feature())
	}

	return fc, nil
}

func (s *layerService) locationFetcher(locationType entity.LocationType) usecase.Fetcher {
	return func(ctx context.Context) (*geojson.FeatureCollection, error) {
		locations, err := s.locations.ListLocations(ctx, locationType)
		if err != nil {
			return nil, err
		}

		fc := geojson.NewFeatureCollection()
		for _, location := range locations {
			fc.Append(location.Feature())
		}

		return fc, nil
	}
}
