package remote

import (
	"bytes"
	"encoding/json"
	"time"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	keyGeom             = "geom"
	keyGeometry         = "geometry"
	keyProperties       = "properties"
	keyDescription      = "description"
	keyGenerationMethod = "generation_method"
	keyCreatedAt        = "created_at"
	keyUpdatedAt        = "updated_at"
)

// feature is one decoded remote record, whatever shape it arrived in.
type feature struct {
	ID         string
	Geometry   orb.Geometry
	Properties map[string]any
}

type pagination struct {
	Page       int   `json:"page"`
	TotalPages int   `json:"total_pages"`
	HasNext    *bool `json:"has_next"`
}

func (p *pagination) hasNext(page int) bool {
	if p.HasNext != nil {
		return *p.HasNext
	}

	return p.TotalPages > 0 && page < p.TotalPages
}

// listPayload accepts a FeatureCollection, a bare record array, or either of
// those wrapped in a {data, pagination} envelope.
type listPayload struct {
	features   []*feature
	pagination *pagination
}

func (p *listPayload) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '[' {
		features, err := decodeRecords(raw)
		p.features = features

		return err
	}

	var probe struct {
		Type       string          `json:"type"`
		Data       json.RawMessage `json:"data"`
		Pagination *pagination     `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return errors.WithStack(err)
	}

	if probe.Type == "FeatureCollection" {
		features, err := decodeCollection(raw)
		p.features = features

		return err
	}

	if probe.Data == nil {
		return errors.Errorf("unrecognized list payload")
	}
	p.pagination = probe.Pagination

	return p.UnmarshalJSON(probe.Data)
}

// recordPayload accepts one record, one Feature, or either under "data".
type recordPayload struct {
	feature *feature
}

func (p *recordPayload) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var probe struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return errors.WithStack(err)
	}

	switch {
	case probe.Type == "Feature":
		f, err := geojson.UnmarshalFeature(raw)
		if err != nil {
			return errors.WithStack(err)
		}
		p.feature = fromGeoJSON(f)

		return nil
	case probe.Data != nil && !bytes.Equal(bytes.TrimSpace(probe.Data), []byte("null")):
		return p.UnmarshalJSON(probe.Data)
	default:
		f, err := decodeRecord(raw)
		p.feature = f

		return err
	}
}

func decodeCollection(raw []byte) ([]*feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	features := make([]*feature, 0, len(fc.Features))
	for _, f := range fc.Features {
		features = append(features, fromGeoJSON(f))
	}

	return features, nil
}

func decodeRecords(raw []byte) ([]*feature, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.WithStack(err)
	}

	features := make([]*feature, 0, len(records))
	for _, record := range records {
		f, err := decodeRecord(record)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}

	return features, nil
}

// decodeRecord reads a flat row whose geometry sits under geom or geometry.
// A nested properties object is merged into the top level.
func decodeRecord(raw []byte) (*feature, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, errors.WithStack(err)
	}

	f := &feature{Properties: make(map[string]any, len(fields))}
	for key, value := range fields {
		switch key {
		case keyGeom, keyGeometry:
			if len(value) == 0 || bytes.Equal(value, []byte("null")) {
				continue
			}
			geometry, err := geojson.UnmarshalGeometry(value)
			if err != nil {
				return nil, errors.Wrap(err, "decode geometry")
			}
			f.Geometry = geometry.Geometry()
		case keyProperties:
			var nested map[string]any
			if err := json.Unmarshal(value, &nested); err != nil {
				return nil, errors.WithStack(err)
			}
			for nestedKey, nestedValue := range nested {
				if _, exists := fields[nestedKey]; !exists {
					f.Properties[nestedKey] = nestedValue
				}
			}
		default:
			var decoded any
			if err := json.Unmarshal(value, &decoded); err != nil {
				return nil, errors.WithStack(err)
			}
			f.Properties[key] = decoded
		}
	}
	f.ID, _ = entity.NormalizeID(f.Properties[entity.PropID])

	return f, nil
}

func fromGeoJSON(f *geojson.Feature) *feature {
	properties := make(map[string]any, len(f.Properties))
	for key, value := range f.Properties {
		properties[key] = value
	}

	id, ok := entity.PersistedID(f)
	if !ok {
		id, _ = entity.ToolkitID(f)
	}

	return &feature{
		ID:         id,
		Geometry:   f.Geometry,
		Properties: properties,
	}
}

func (f *feature) stringProp(key string) string {
	value, _ := f.Properties[key].(string)

	return value
}

func (f *feature) intProp(key string) int {
	switch value := f.Properties[key].(type) {
	case float64:
		return int(value)
	case int:
		return value
	default:
		return 0
	}
}

func (f *feature) timeProp(key string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, f.stringProp(key))
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func toTerritory(f *feature) (*entity.Territory, error) {
	if f == nil || f.ID == "" {
		return nil, errors.WithStack(domainerrors.ErrMissingJoinKey)
	}
	switch f.Geometry.(type) {
	case orb.Polygon, orb.MultiPolygon:
	default:
		return nil, errors.WithStack(domainerrors.ErrUnsupportedGeometry.WithDetails("territory " + f.ID))
	}

	return &entity.Territory{
		ID:               f.ID,
		Name:             f.stringProp(entity.PropName),
		Description:      f.stringProp(keyDescription),
		Geometry:         f.Geometry,
		Color:            f.stringProp(entity.PropColor),
		CustomerCount:    f.intProp(entity.PropCustomerCount),
		GenerationMethod: f.stringProp(keyGenerationMethod),
		CreatedAt:        f.timeProp(keyCreatedAt),
		UpdatedAt:        f.timeProp(keyUpdatedAt),
	}, nil
}

// locationPropertyExcludes are columns mapped to Location fields.
var locationPropertyExcludes = map[string]struct{}{
	entity.PropID:           {},
	entity.PropName:         {},
	entity.PropLocationType: {},
	keyCreatedAt:            {},
	keyUpdatedAt:            {},
}

func toLocation(f *feature, locationType entity.LocationType) (*entity.Location, error) {
	if f == nil || f.ID == "" {
		return nil, errors.WithStack(domainerrors.ErrMissingJoinKey)
	}
	point, ok := f.Geometry.(orb.Point)
	if !ok {
		return nil, errors.WithStack(domainerrors.ErrUnsupportedGeometry.WithDetails("location " + f.ID))
	}

	properties := make(map[string]any, len(f.Properties))
	for key, value := range f.Properties {
		if _, skip := locationPropertyExcludes[key]; skip {
			continue
		}
		properties[key] = value
	}

	return &entity.Location{
		ID:           f.ID,
		Name:         f.stringProp(entity.PropName),
		Geometry:     point,
		LocationType: locationType,
		Properties:   properties,
		CreatedAt:    f.timeProp(keyCreatedAt),
		UpdatedAt:    f.timeProp(keyUpdatedAt),
	}, nil
}

func toGeoJSON(f *feature) *geojson.Feature {
	out := geojson.NewFeature(f.Geometry)
	for key, value := range f.Properties {
		out.Properties[key] = value
	}
	if f.ID != "" {
		out.ID = f.ID
		out.Properties[entity.PropID] = f.ID
	}

	return out
}
