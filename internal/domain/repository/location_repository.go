package repository

import (
	"context"

	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb"
)

// LocationInput is the payload of a location create mutation.
type LocationInput struct {
	Name       string         `json:"name"`
	Geometry   orb.Point      `json:"-"`
	Properties map[string]any `json:"properties,omitempty"`
}

// LocationRepository defines remote operations on locations. The location
// type selects the remote collection.
type LocationRepository interface {
	// ListLocations returns every location of the given type.
	ListLocations(ctx context.Context, locationType entity.LocationType) ([]*entity.Location, error)

	// CreateLocation persists a new location in the collection of locationType.
	CreateLocation(ctx context.Context, locationType entity.LocationType, input *LocationInput) (*entity.Location, error)

	// UpdateLocationGeometry partially updates geom and updated_at.
	UpdateLocationGeometry(ctx context.Context, locationType entity.LocationType, id string, patch *GeometryPatch) (*entity.Location, error)

	// DeleteLocation removes a location by id.
	DeleteLocation(ctx context.Context, locationType entity.LocationType, id string) error
}
