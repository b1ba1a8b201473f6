package usecase

import (
	"context"

	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb/geojson"
)

// Fetcher loads one source collection from the remote side.
type Fetcher func(ctx context.Context) (*geojson.FeatureCollection, error)

// LayerUsecase defines read access to layer collections and derived analytics.
type LayerUsecase interface {
	// Fetcher returns the loader for a non-derived layer type; the layer-type
	// string doubles as its query key.
	Fetcher(layerType entity.LayerType) (Fetcher, bool)

	// Collection reads one source collection through the shared query cache.
	Collection(ctx context.Context, layerType entity.LayerType) (*geojson.FeatureCollection, error)

	// GetLayers returns the default layer stack hydrated with current data.
	GetLayers(ctx context.Context) ([]entity.Layer, error)

	// PopulationAnalysis aggregates location population per boundary.
	PopulationAnalysis(ctx context.Context) (*geojson.FeatureCollection, error)

	// ExpansionAnalysis scores and ranks boundaries for expansion.
	ExpansionAnalysis(ctx context.Context) (*geojson.FeatureCollection, error)
}
