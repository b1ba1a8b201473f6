package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/errors"
	"terrimap/internal/infra/query"
	mockRepo "terrimap/internal/mocks/repository"
	"terrimap/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type layerServiceFixture struct {
	service     usecase.LayerUsecase
	territories *mockRepo.MockTerritoryRepository
	locations   *mockRepo.MockLocationRepository
	references  *mockRepo.MockReferenceLayerRepository
}

func newLayerServiceFixture(t *testing.T) *layerServiceFixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	fixture := &layerServiceFixture{
		territories: mockRepo.NewMockTerritoryRepository(t),
		locations:   mockRepo.NewMockLocationRepository(t),
		references:  mockRepo.NewMockReferenceLayerRepository(t),
	}
	fixture.service = NewLayerService(LayerServiceParams{
		Logger:      logger,
		Hub:         query.NewHub(logger, query.NewMemoryCache(), time.Minute),
		Territories: fixture.territories,
		Locations:   fixture.locations,
		References:  fixture.references,
	})

	return fixture
}

func square(minX, minY, size float64) orb.Polygon {
	return orb.Polygon{{
		{minX, minY},
		{minX + size, minY},
		{minX + size, minY + size},
		{minX, minY + size},
		{minX, minY},
	}}
}

func boundaryCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	north := geojson.NewFeature(square(0, 1, 1))
	north.Properties["name"] = "North"
	fc.Append(north)
	south := geojson.NewFeature(square(0, 0, 1))
	south.Properties["name"] = "South"
	fc.Append(south)

	return fc
}

func TestLayerService_Collection_CachesPerKey(t *testing.T) {
	f := newLayerServiceFixture(t)
	ctx := context.Background()

	f.territories.EXPECT().
		ListTerritories(mock.Anything).
		Return([]*entity.Territory{{ID: "t-1", Name: "Downtown", Geometry: square(0, 0, 1)}}, nil).
		Once()

	first, err := f.service.Collection(ctx, entity.LayerTypeTerritories)
	require.NoError(t, err)
	require.Len(t, first.Features, 1)
	assert.Equal(t, "t-1", first.Features[0].Properties[entity.PropID])

	second, err := f.service.Collection(ctx, entity.LayerTypeTerritories)
	require.NoError(t, err)
	assert.Len(t, second.Features, 1)
}

func TestLayerService_Collection_UnknownLayer(t *testing.T) {
	f := newLayerServiceFixture(t)

	_, err := f.service.Collection(context.Background(), entity.LayerTypePopulationAnalysis)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownLayer)

	_, ok := f.service.Fetcher(entity.LayerTypeExpansionAnalysis)
	assert.False(t, ok)
}

func TestLayerService_Fetcher_Locations(t *testing.T) {
	f := newLayerServiceFixture(t)

	f.locations.EXPECT().
		ListLocations(mock.Anything, entity.LocationTypePotential).
		Return([]*entity.Location{{ID: "p-1", Name: "Harbor", Geometry: orb.Point{1, 2}, LocationType: entity.LocationTypePotential}}, nil).
		Once()

	fetcher, ok := f.service.Fetcher(entity.LayerTypePotentialLocations)
	require.True(t, ok)

	fc, err := fetcher(context.Background())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "potential", fc.Features[0].Properties[entity.PropLocationType])
}

func TestLayerService_GetLayers_FailedSourceKeepsOthers(t *testing.T) {
	f := newLayerServiceFixture(t)

	f.territories.EXPECT().ListTerritories(mock.Anything).Return(nil, errors.New("boom")).Once()
	f.locations.EXPECT().ListLocations(mock.Anything, mock.Anything).Return(nil, nil).Twice()
	f.references.EXPECT().ReferenceLayer(mock.Anything, entity.LayerTypeBoundaries).Return(boundaryCollection(), nil).Once()
	f.references.EXPECT().ReferenceLayer(mock.Anything, entity.LayerTypeRivers).Return(geojson.NewFeatureCollection(), nil).Once()
	f.references.EXPECT().ReferenceLayer(mock.Anything, entity.LayerTypeRoads).Return(geojson.NewFeatureCollection(), nil).Once()

	layers, err := f.service.GetLayers(context.Background())
	require.NoError(t, err)
	require.Len(t, layers, len(entity.LayerTypes))

	byType := make(map[entity.LayerType]entity.Layer, len(layers))
	for _, l := range layers {
		byType[l.Type] = l
	}
	assert.Empty(t, byType[entity.LayerTypeTerritories].Data.Features)
	assert.Len(t, byType[entity.LayerTypeBoundaries].Data.Features, 2)
	// No locations, so nothing to aggregate.
	assert.Empty(t, byType[entity.LayerTypePopulationAnalysis].Data.Features)
}

func TestLayerService_GetLayers_ContextCancelled(t *testing.T) {
	f := newLayerServiceFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.territories.EXPECT().ListTerritories(mock.Anything).Return(nil, context.Canceled).Maybe()

	_, err := f.service.GetLayers(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLayerService_Analysis(t *testing.T) {
	f := newLayerServiceFixture(t)

	current := &entity.Location{
		ID:           "c-1",
		Geometry:     orb.Point{0.5, 1.5},
		LocationType: entity.LocationTypeCurrent,
		Properties:   map[string]any{"population": 1200.0},
	}
	potential := &entity.Location{
		ID:           "p-1",
		Geometry:     orb.Point{0.5, 0.5},
		LocationType: entity.LocationTypePotential,
		Properties:   map[string]any{"population": 800.0},
	}

	f.locations.EXPECT().ListLocations(mock.Anything, entity.LocationTypeCurrent).Return([]*entity.Location{current}, nil).Once()
	f.locations.EXPECT().ListLocations(mock.Anything, entity.LocationTypePotential).Return([]*entity.Location{potential}, nil).Once()
	f.references.EXPECT().ReferenceLayer(mock.Anything, entity.LayerTypeBoundaries).Return(boundaryCollection(), nil).Once()

	population, err := f.service.PopulationAnalysis(context.Background())
	require.NoError(t, err)
	require.Len(t, population.Features, 2)

	// Inputs are cached, so the second analysis does not hit the repositories.
	expansion, err := f.service.ExpansionAnalysis(context.Background())
	require.NoError(t, err)
	assert.Len(t, expansion.Features, 2)
}

func TestLayerService_Analysis_SourceError(t *testing.T) {
	f := newLayerServiceFixture(t)

	f.locations.EXPECT().
		ListLocations(mock.Anything, entity.LocationTypeCurrent).
		Return(nil, domainerrors.ErrRemoteUnavailable).
		Once()

	_, err := f.service.PopulationAnalysis(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrRemoteUnavailable)
}
