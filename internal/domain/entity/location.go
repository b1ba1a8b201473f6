// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Location is a persisted point of interest.
// LocationType decides which remote collection it lives in and how it renders.
type Location struct {
	ID           string
	Name         string
	Geometry     orb.Point
	LocationType LocationType
	// Properties carries the free-form sub-objects (demographics, economics,
	// business_metrics) plus flat values such as population.
	Properties map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Feature mirrors the location as a drawing-toolkit feature tagged with its
// locationType.
func (l *Location) Feature() *geojson.Feature {
	feature := geojson.NewFeature(l.Geometry)
	for key, value := range l.Properties {
		feature.Properties[key] = value
	}
	feature.ID = l.ID
	feature.Properties[PropID] = l.ID
	feature.Properties[PropName] = l.Name
	feature.Properties[PropLocationType] = l.LocationType.String()

	return feature
}
