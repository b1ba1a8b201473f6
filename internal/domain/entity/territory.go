// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Territory is a persisted polygon or multipolygon sales/service region.
// The remote data service owns it; the engine only holds a transient copy.
type Territory struct {
	ID               string       // Persisted id; the join key against drawn features.
	Name             string       // Display name.
	Description      string       // Free-form description.
	Geometry         orb.Geometry // orb.Polygon or orb.MultiPolygon.
	Color            string       // Fill colour, e.g. "#3b82f6".
	CustomerCount    int          // Number of customers served by this territory.
	GenerationMethod string       // "manual", "drawn", "generated", ...
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Feature mirrors the territory as a drawing-toolkit feature carrying
// properties.id equal to the persisted id.
func (t *Territory) Feature() *geojson.Feature {
	feature := geojson.NewFeature(t.Geometry)
	feature.ID = t.ID
	feature.Properties[PropID] = t.ID
	feature.Properties[PropName] = t.Name
	if t.Color != "" {
		feature.Properties[PropColor] = t.Color
	}
	feature.Properties[PropCustomerCount] = t.CustomerCount

	return feature
}
