package tiles

import (
	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
)

// MVTDecoder extracts reference-layer features from vector tiles.
type MVTDecoder struct {
	layerName string
	// geometry is the render primitive kept: "polygon" or "line".
	geometry string
}

// NewMVTDecoder creates a decoder reading layerName and keeping the
// geometries that the reference layer type renders.
func NewMVTDecoder(layerName string, layerType entity.LayerType) *MVTDecoder {
	return &MVTDecoder{
		layerName: layerName,
		geometry:  layerType.Geometry(),
	}
}

// DecodeTile decodes tile data and returns its features in WGS84.
func (d *MVTDecoder) DecodeTile(data []byte, tile maptile.Tile) ([]*geojson.Feature, error) {
	// Try to decode as gzipped first, then as regular MVT
	layers, err := mvt.UnmarshalGzipped(data)
	if err != nil {
		layers, err = mvt.Unmarshal(data)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	var layer *mvt.Layer
	for _, candidate := range layers {
		if candidate.Name == d.layerName {
			layer = candidate

			break
		}
	}
	if layer == nil {
		return []*geojson.Feature{}, nil
	}

	layer.ProjectToWGS84(tile)

	features := make([]*geojson.Feature, 0, len(layer.Features))
	for _, feature := range layer.Features {
		if !d.keeps(feature.Geometry) {
			continue
		}
		if feature.Properties == nil {
			feature.Properties = geojson.Properties{}
		}
		features = append(features, feature)
	}

	return features, nil
}

func (d *MVTDecoder) keeps(geometry orb.Geometry) bool {
	switch geometry.(type) {
	case orb.Polygon, orb.MultiPolygon:
		return d.geometry == "polygon"
	case orb.LineString, orb.MultiLineString:
		return d.geometry == "line"
	default:
		return false
	}
}
