// Package entity contains the core business objects of the project.
package entity

import "github.com/paulmach/orb/geojson"

// LayerType identifies a rendering layer.
type LayerType string

const (
	LayerTypeTerritories        LayerType = "territories"
	LayerTypeCurrentLocations   LayerType = "current-locations"
	LayerTypePotentialLocations LayerType = "potential-locations"
	LayerTypeBoundaries         LayerType = "boundaries"
	LayerTypeRivers             LayerType = "rivers"
	LayerTypeRoads              LayerType = "roads"
	LayerTypePopulationAnalysis LayerType = "population-analysis"
	LayerTypeExpansionAnalysis  LayerType = "expansion-analysis"
)

// LayerTypes lists every layer type in rendering order.
var LayerTypes = []LayerType{
	LayerTypeTerritories,
	LayerTypeCurrentLocations,
	LayerTypePotentialLocations,
	LayerTypeBoundaries,
	LayerTypeRivers,
	LayerTypeRoads,
	LayerTypePopulationAnalysis,
	LayerTypeExpansionAnalysis,
}

// String returns the string representation of the LayerType.
func (t LayerType) String() string {
	return string(t)
}

// IsValid checks if the LayerType is a valid value.
func (t LayerType) IsValid() bool {
	for _, known := range LayerTypes {
		if t == known {
			return true
		}
	}

	return false
}

// IsDerived reports whether the layer is computed from other layers.
func (t LayerType) IsDerived() bool {
	return t == LayerTypePopulationAnalysis || t == LayerTypeExpansionAnalysis
}

// Geometry returns the render primitive for the layer: "polygon", "point" or "line".
func (t LayerType) Geometry() string {
	switch t {
	case LayerTypeCurrentLocations, LayerTypePotentialLocations:
		return "point"
	case LayerTypeRivers, LayerTypeRoads:
		return "line"
	default:
		return "polygon"
	}
}

// Layer is one hydrated rendering unit. Data is never nil.
type Layer struct {
	ID      string                     `json:"id"`
	Name    string                     `json:"name"`
	Type    LayerType                  `json:"type"`
	Visible bool                       `json:"visible"`
	Opacity float64                    `json:"opacity"`
	Color   string                     `json:"color"`
	Data    *geojson.FeatureCollection `json:"data"`
}
