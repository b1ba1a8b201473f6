package layer

import (
	"terrimap/internal/analytics"
	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb/geojson"
)

// derivedKey identifies the inputs of the derived layers.
type derivedKey struct {
	current    uint64
	potential  uint64
	boundaries uint64
}

// Pipeline hydrates layer configs with source data and derived analytics.
// It is not safe for concurrent use; a session owns one.
type Pipeline struct {
	memo analytics.Memo[derivedKey]
}

// NewPipeline creates an empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// Build returns one Layer per config, in config order, each with non-nil Data.
func (p *Pipeline) Build(configs []Config, sources Sources) []entity.Layer {
	derived := p.derived(sources)

	layers := make([]entity.Layer, 0, len(configs))
	for _, cfg := range configs {
		layer := entity.Layer{
			ID:      cfg.ID,
			Name:    cfg.Name,
			Type:    cfg.Type,
			Visible: cfg.Visible,
			Opacity: clampOpacity(cfg.Opacity),
			Color:   cfg.Color,
		}

		switch cfg.Type {
		case entity.LayerTypePopulationAnalysis:
			layer.Data = derived.Population
		case entity.LayerTypeExpansionAnalysis:
			layer.Data = derived.Expansion
		default:
			layer.Data = sources.dataOrEmpty(cfg.Type)
		}
		if layer.Data == nil {
			layer.Data = geojson.NewFeatureCollection()
		}

		layers = append(layers, layer)
	}

	return layers
}

// DerivedComputations reports how often spatial analysis actually ran.
func (p *Pipeline) DerivedComputations() int {
	return p.memo.Computations()
}

func (p *Pipeline) derived(sources Sources) analytics.Result {
	key := derivedKey{
		current:    sources[entity.LayerTypeCurrentLocations].Revision,
		potential:  sources[entity.LayerTypePotentialLocations].Revision,
		boundaries: sources[entity.LayerTypeBoundaries].Revision,
	}

	return p.memo.Get(key, func() (*geojson.FeatureCollection, *geojson.FeatureCollection) {
		return mergeLocations(sources), sources.dataOrEmpty(entity.LayerTypeBoundaries)
	})
}

// mergeLocations concatenates current and potential location features.
func mergeLocations(sources Sources) *geojson.FeatureCollection {
	current := sources.dataOrEmpty(entity.LayerTypeCurrentLocations)
	potential := sources.dataOrEmpty(entity.LayerTypePotentialLocations)

	merged := geojson.NewFeatureCollection()
	merged.Features = make([]*geojson.Feature, 0, len(current.Features)+len(potential.Features))
	merged.Features = append(merged.Features, current.Features...)
	merged.Features = append(merged.Features, potential.Features...)

	return merged
}
