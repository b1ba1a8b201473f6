package remote

import (
	"context"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/errors"

	"github.com/paulmach/orb/geojson"
)

var _ repository.ReferenceLayerRepository = (*Client)(nil)

// ReferenceLayer reads boundaries, rivers or roads. Features without a
// geometry are dropped.
func (c *Client) ReferenceLayer(ctx context.Context, layerType entity.LayerType) (*geojson.FeatureCollection, error) {
	switch layerType {
	case entity.LayerTypeBoundaries, entity.LayerTypeRivers, entity.LayerTypeRoads:
	default:
		return nil, errors.WithStack(domainerrors.ErrUnknownLayer.WithDetails(layerType.String()))
	}

	features, err := c.list(ctx, "/layers/"+layerType.String())
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		fc.Append(toGeoJSON(f))
	}

	return fc, nil
}
