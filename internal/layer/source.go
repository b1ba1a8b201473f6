package layer

import (
	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb/geojson"
)

// Status is the load state of a data source.
type Status string

const (
	StatusLoading Status = "loading"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Source is one remote dataset as last resolved.
type Source struct {
	Status Status
	Data   *geojson.FeatureCollection
	// Revision increases every time Data is replaced.
	Revision uint64
}

// Loaded reports whether the source has resolved at least once.
func (s Source) Loaded() bool {
	return s.Status == StatusReady || s.Status == StatusEmpty
}

// Settled reports whether the source is done fetching, failed or not.
func (s Source) Settled() bool {
	return s.Loaded() || s.Status == StatusError
}

// Sources holds every fetched dataset keyed by layer type. Derived layer
// types never appear here.
type Sources map[entity.LayerType]Source

// Clone returns a shallow copy safe to mutate.
func (s Sources) Clone() Sources {
	clone := make(Sources, len(s))
	for key, value := range s {
		clone[key] = value
	}

	return clone
}

// dataOrEmpty never hands out a nil collection.
func (s Sources) dataOrEmpty(layerType entity.LayerType) *geojson.FeatureCollection {
	if source, ok := s[layerType]; ok && source.Data != nil {
		return source.Data
	}

	return geojson.NewFeatureCollection()
}
