// Package entity contains the core business objects of the project.
package entity

import "github.com/paulmach/orb"

// EntityKind is what a drawn geometry persists as.
type EntityKind string

const (
	// EntityKindTerritory is persisted through the territory collection.
	EntityKindTerritory EntityKind = "territory"
	// EntityKindLocation is persisted through a location collection.
	EntityKindLocation EntityKind = "location"
	// EntityKindUnsupported cannot be persisted; callers must refuse the save.
	EntityKindUnsupported EntityKind = "unsupported"
)

// ClassifyGeometry maps a GeoJSON geometry type name to an entity kind.
func ClassifyGeometry(geometryType string) EntityKind {
	switch geometryType {
	case "Polygon", "MultiPolygon":
		return EntityKindTerritory
	case "Point":
		return EntityKindLocation
	default:
		return EntityKindUnsupported
	}
}

// ClassifyOrb classifies an orb geometry; nil is unsupported.
func ClassifyOrb(geometry orb.Geometry) EntityKind {
	if geometry == nil {
		return EntityKindUnsupported
	}

	return ClassifyGeometry(geometry.GeoJSONType())
}
