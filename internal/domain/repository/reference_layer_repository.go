package repository

import (
	"context"

	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb/geojson"
)

// ReferenceLayerRepository serves read-only reference layers
// (boundaries, rivers, roads).
type ReferenceLayerRepository interface {
	// ReferenceLayer returns the FeatureCollection for a reference layer type.
	ReferenceLayer(ctx context.Context, layerType entity.LayerType) (*geojson.FeatureCollection, error)
}
