package render

import (
	"terrimap/internal/analytics"
	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"
)

// Map style layer kinds.
const (
	kindFill   = "fill"
	kindLine   = "line"
	kindCircle = "circle"
)

// styleLayer is one map style layer derived from a hydrated layer.
type styleLayer struct {
	spec service.LayerSpec
	// dynamic paint re-applied on every render pass
	paint map[string]any
}

// styleLayers returns the style layers for layer, keyed off its geometry.
func styleLayers(layer entity.Layer) []styleLayer {
	color := colorExpression(layer)

	switch layer.Type.Geometry() {
	case "point":
		return []styleLayer{{
			spec: service.LayerSpec{
				ID:     layer.ID + "-circle",
				Source: layer.ID,
				Type:   kindCircle,
				Paint: map[string]any{
					"circle-radius":       6,
					"circle-stroke-color": "#ffffff",
					"circle-stroke-width": 1,
				},
			},
			paint: map[string]any{
				"circle-color":   color,
				"circle-opacity": layer.Opacity,
			},
		}}
	case "line":
		return []styleLayer{{
			spec: service.LayerSpec{
				ID:     layer.ID + "-line",
				Source: layer.ID,
				Type:   kindLine,
				Paint:  map[string]any{"line-width": 2},
			},
			paint: map[string]any{
				"line-color":   color,
				"line-opacity": layer.Opacity,
			},
		}}
	default:
		return []styleLayer{
			{
				spec: service.LayerSpec{
					ID:     layer.ID + "-fill",
					Source: layer.ID,
					Type:   kindFill,
				},
				paint: map[string]any{
					"fill-color":   color,
					"fill-opacity": layer.Opacity,
				},
			},
			{
				spec: service.LayerSpec{
					ID:     layer.ID + "-outline",
					Source: layer.ID,
					Type:   kindLine,
					Paint:  map[string]any{"line-width": 1},
				},
				paint: map[string]any{
					"line-color":   layer.Color,
					"line-opacity": min(1, layer.Opacity+0.2),
				},
			},
		}
	}
}

// colorExpression colours derived layers by their computed properties.
func colorExpression(layer entity.Layer) any {
	switch layer.Type {
	case entity.LayerTypePopulationAnalysis:
		return []any{
			"interpolate", []any{"linear"}, []any{"coalesce", []any{"get", analytics.PropTotalPopulation}, 0},
			0, "#ede9fe",
			50000, "#a78bfa",
			250000, layer.Color,
		}
	case entity.LayerTypeExpansionAnalysis:
		return []any{
			"match", []any{"get", analytics.PropExpansionRank},
			1, layer.Color,
			2, "#f97316",
			3, "#facc15",
			"#d1d5db",
		}
	case entity.LayerTypeTerritories:
		return []any{"coalesce", []any{"get", entity.PropColor}, layer.Color}
	default:
		return layer.Color
	}
}

func visibility(visible bool) string {
	if visible {
		return "visible"
	}

	return "none"
}
