package remote

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/errors"

	"github.com/paulmach/orb/geojson"
)

const territoriesPath = "/territories"

var _ repository.TerritoryRepository = (*Client)(nil)

type territoryBody struct {
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Color            string            `json:"color,omitempty"`
	CustomerCount    int               `json:"customer_count"`
	GenerationMethod string            `json:"generation_method,omitempty"`
	Geom             *geojson.Geometry `json:"geom"`
}

// geometryPatchBody is merged into the stored record; absent columns are kept.
type geometryPatchBody struct {
	Geom      *geojson.Geometry `json:"geom"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func newGeometryPatchBody(patch *repository.GeometryPatch) geometryPatchBody {
	return geometryPatchBody{
		Geom:      geojson.NewGeometry(patch.Geometry),
		UpdatedAt: patch.UpdatedAt.UTC(),
	}
}

// ListTerritories returns every territory. Rows with an unusable geometry
// or no id are skipped.
func (c *Client) ListTerritories(ctx context.Context) ([]*entity.Territory, error) {
	features, err := c.list(ctx, territoriesPath)
	if err != nil {
		return nil, err
	}

	territories := make([]*entity.Territory, 0, len(features))
	for _, f := range features {
		territory, err := toTerritory(f)
		if err != nil {
			c.logger.Warn("Skipping territory record", slog.String("id", f.ID), slog.Any("error", err))

			continue
		}
		territories = append(territories, territory)
	}

	return territories, nil
}

// CreateTerritory posts a new territory.
func (c *Client) CreateTerritory(ctx context.Context, input *repository.TerritoryInput) (*entity.Territory, error) {
	if input == nil || input.Geometry == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("territory geometry is required"))
	}

	body := territoryBody{
		Name:             input.Name,
		Description:      input.Description,
		Color:            input.Color,
		CustomerCount:    input.CustomerCount,
		GenerationMethod: input.GenerationMethod,
		Geom:             geojson.NewGeometry(input.Geometry),
	}

	var payload recordPayload
	if err := c.do(ctx, http.MethodPost, territoriesPath, nil, body, &payload); err != nil {
		return nil, err
	}

	territory, err := toTerritory(payload.feature)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrMutationFailed.WithDetails(err.Error()), "create territory")
	}

	return territory, nil
}

// UpdateTerritoryGeometry sends a partial merge of geom and updated_at.
func (c *Client) UpdateTerritoryGeometry(ctx context.Context, id string, patch *repository.GeometryPatch) (*entity.Territory, error) {
	if id == "" {
		return nil, errors.WithStack(domainerrors.ErrMissingJoinKey)
	}
	if patch == nil || patch.Geometry == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("patch geometry is required"))
	}

	var payload recordPayload
	if err := c.do(ctx, http.MethodPut, territoryPath(id), nil, newGeometryPatchBody(patch), &payload); err != nil {
		return nil, err
	}

	// Some deployments answer 204; the caller only needs the id and geometry back.
	if payload.feature == nil {
		return &entity.Territory{ID: id, Geometry: patch.Geometry, UpdatedAt: patch.UpdatedAt}, nil
	}

	return toTerritory(payload.feature)
}

// DeleteTerritory removes a territory.
func (c *Client) DeleteTerritory(ctx context.Context, id string) error {
	if id == "" {
		return errors.WithStack(domainerrors.ErrMissingJoinKey)
	}

	return c.do(ctx, http.MethodDelete, territoryPath(id), nil, nil, nil)
}

func territoryPath(id string) string {
	return territoriesPath + "/" + url.PathEscape(id)
}
