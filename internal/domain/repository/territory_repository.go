// Package repository defines the interfaces for the persistence layer.
// The persistence layer is the remote data service; these interfaces are the
// contract between the editing engine and its HTTP client.
package repository

import (
	"context"
	"time"

	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb"
)

// TerritoryInput is the payload of a create mutation.
type TerritoryInput struct {
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	Geometry         orb.Geometry `json:"-"`
	Color            string       `json:"color,omitempty"`
	CustomerCount    int          `json:"customer_count"`
	GenerationMethod string       `json:"generation_method,omitempty"`
}

// GeometryPatch is the partial-merge body sent when a drawn edit is confirmed.
type GeometryPatch struct {
	Geometry  orb.Geometry
	UpdatedAt time.Time
}

// TerritoryRepository defines remote operations on territories.
type TerritoryRepository interface {
	// ListTerritories returns every territory visible to the caller.
	ListTerritories(ctx context.Context) ([]*entity.Territory, error)

	// CreateTerritory persists a new territory and returns the stored record.
	CreateTerritory(ctx context.Context, input *TerritoryInput) (*entity.Territory, error)

	// UpdateTerritoryGeometry partially updates geom and updated_at.
	UpdateTerritoryGeometry(ctx context.Context, id string, patch *GeometryPatch) (*entity.Territory, error)

	// DeleteTerritory removes a territory by id.
	DeleteTerritory(ctx context.Context, id string) error
}
