// Package entity contains the core business objects of the project.
package entity

// LocationType distinguishes existing locations from candidate ones.
type LocationType string

const (
	// LocationTypeCurrent is an existing, operating location.
	LocationTypeCurrent LocationType = "current"
	// LocationTypePotential is a candidate location under evaluation.
	LocationTypePotential LocationType = "potential"
)

// String returns the string representation of the LocationType.
func (t LocationType) String() string {
	return string(t)
}

// IsValid checks if the LocationType is a valid value.
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeCurrent, LocationTypePotential:
		return true
	default:
		return false
	}
}

// PointColor is the toolkit paint colour used while drawing this type.
func (t LocationType) PointColor() string {
	if t == LocationTypePotential {
		return "#f59e0b"
	}

	return "#10b981"
}

// LayerType returns the rendering layer that holds this location type.
func (t LocationType) LayerType() LayerType {
	if t == LocationTypePotential {
		return LayerTypePotentialLocations
	}

	return LayerTypeCurrentLocations
}
