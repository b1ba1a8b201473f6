// Package layer merges independently loading geographic datasets into the
// ordered, fully hydrated layer stack the renderer and legend consume.
package layer

import "terrimap/internal/domain/entity"

// Config is the static, user-adjustable part of a layer.
type Config struct {
	ID      string           `json:"id" yaml:"id"`
	Name    string           `json:"name" yaml:"name"`
	Type    entity.LayerType `json:"type" yaml:"type"`
	Visible bool             `json:"visible" yaml:"visible"`
	Opacity float64          `json:"opacity" yaml:"opacity"`
	Color   string           `json:"color" yaml:"color"`
}

// DefaultConfigs returns the fixed layer order of the dashboard.
func DefaultConfigs() []Config {
	return []Config{
		{ID: "territories", Name: "Territories", Type: entity.LayerTypeTerritories, Visible: true, Opacity: 0.5, Color: "#3b82f6"},
		{ID: "current-locations", Name: "Current Locations", Type: entity.LayerTypeCurrentLocations, Visible: true, Opacity: 1, Color: "#10b981"},
		{ID: "potential-locations", Name: "Potential Locations", Type: entity.LayerTypePotentialLocations, Visible: true, Opacity: 1, Color: "#f59e0b"},
		{ID: "boundaries", Name: "US Boundaries", Type: entity.LayerTypeBoundaries, Visible: false, Opacity: 0.3, Color: "#6b7280"},
		{ID: "rivers", Name: "Rivers", Type: entity.LayerTypeRivers, Visible: false, Opacity: 0.8, Color: "#0ea5e9"},
		{ID: "roads", Name: "Roads", Type: entity.LayerTypeRoads, Visible: false, Opacity: 0.8, Color: "#78716c"},
		{ID: "population-analysis", Name: "Population Analysis", Type: entity.LayerTypePopulationAnalysis, Visible: false, Opacity: 0.6, Color: "#8b5cf6"},
		{ID: "expansion-analysis", Name: "Expansion Analysis", Type: entity.LayerTypeExpansionAnalysis, Visible: false, Opacity: 0.6, Color: "#ef4444"},
	}
}

func clampOpacity(opacity float64) float64 {
	switch {
	case opacity < 0:
		return 0
	case opacity > 1:
		return 1
	default:
		return opacity
	}
}
