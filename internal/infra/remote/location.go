package remote

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

var _ repository.LocationRepository = (*Client)(nil)

type locationBody struct {
	Name       string            `json:"name"`
	Properties map[string]any    `json:"properties,omitempty"`
	Geom       *geojson.Geometry `json:"geom"`
}

// ListLocations returns every location of the given type.
func (c *Client) ListLocations(ctx context.Context, locationType entity.LocationType) ([]*entity.Location, error) {
	path, err := locationsPath(locationType)
	if err != nil {
		return nil, err
	}

	features, err := c.list(ctx, path)
	if err != nil {
		return nil, err
	}

	locations := make([]*entity.Location, 0, len(features))
	for _, f := range features {
		location, err := toLocation(f, locationType)
		if err != nil {
			c.logger.Warn("Skipping location record",
				slog.String("id", f.ID),
				slog.String("location_type", locationType.String()),
				slog.Any("error", err),
			)

			continue
		}
		locations = append(locations, location)
	}

	return locations, nil
}

// CreateLocation posts a new location into the collection of locationType.
func (c *Client) CreateLocation(ctx context.Context, locationType entity.LocationType, input *repository.LocationInput) (*entity.Location, error) {
	path, err := locationsPath(locationType)
	if err != nil {
		return nil, err
	}
	if input == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("location input is required"))
	}

	body := locationBody{
		Name:       input.Name,
		Properties: input.Properties,
		Geom:       geojson.NewGeometry(input.Geometry),
	}

	var payload recordPayload
	if err := c.do(ctx, http.MethodPost, path, nil, body, &payload); err != nil {
		return nil, err
	}

	location, err := toLocation(payload.feature, locationType)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrMutationFailed.WithDetails(err.Error()), "create location")
	}

	return location, nil
}

// UpdateLocationGeometry sends a partial merge of geom and updated_at.
func (c *Client) UpdateLocationGeometry(ctx context.Context, locationType entity.LocationType, id string, patch *repository.GeometryPatch) (*entity.Location, error) {
	path, err := locationPath(locationType, id)
	if err != nil {
		return nil, err
	}
	if patch == nil || patch.Geometry == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("patch geometry is required"))
	}

	var payload recordPayload
	if err := c.do(ctx, http.MethodPut, path, nil, newGeometryPatchBody(patch), &payload); err != nil {
		return nil, err
	}

	if payload.feature == nil {
		location := &entity.Location{ID: id, LocationType: locationType, UpdatedAt: patch.UpdatedAt}
		location.Geometry, _ = patch.Geometry.(orb.Point)

		return location, nil
	}

	return toLocation(payload.feature, locationType)
}

// DeleteLocation removes a location.
func (c *Client) DeleteLocation(ctx context.Context, locationType entity.LocationType, id string) error {
	path, err := locationPath(locationType, id)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func locationsPath(locationType entity.LocationType) (string, error) {
	if !locationType.IsValid() {
		return "", errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown location type " + locationType.String()))
	}

	return "/locations/" + locationType.String(), nil
}

func locationPath(locationType entity.LocationType, id string) (string, error) {
	if id == "" {
		return "", errors.WithStack(domainerrors.ErrMissingJoinKey)
	}
	path, err := locationsPath(locationType)
	if err != nil {
		return "", err
	}

	return path + "/" + url.PathEscape(id), nil
}
