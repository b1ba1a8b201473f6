package layer

import (
	"slices"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/service"

	"github.com/paulmach/orb/geojson"
)

// Store owns the layer configs and sources of one session and notifies
// listeners with the rebuilt layer stack on every change. Like the pipeline
// it lives on the session's event loop.
type Store struct {
	configs   []Config
	sources   Sources
	pipeline  *Pipeline
	layers    []entity.Layer
	listeners map[int]func([]entity.Layer)
	nextID    int
}

// NewStore creates a store with the given configs; every source starts loading.
func NewStore(configs []Config) *Store {
	if len(configs) == 0 {
		configs = DefaultConfigs()
	}

	sources := make(Sources)
	for _, cfg := range configs {
		if !cfg.Type.IsDerived() {
			sources[cfg.Type] = Source{Status: StatusLoading}
		}
	}

	store := &Store{
		configs:   slices.Clone(configs),
		sources:   sources,
		pipeline:  NewPipeline(),
		listeners: make(map[int]func([]entity.Layer)),
	}
	store.layers = store.pipeline.Build(store.configs, store.sources)

	return store
}

// Layers returns the current hydrated layers.
func (s *Store) Layers() []entity.Layer {
	return s.layers
}

// Source returns the current state of one source.
func (s *Store) Source(layerType entity.LayerType) Source {
	return s.sources[layerType]
}

// Configs returns a copy of the layer configs.
func (s *Store) Configs() []Config {
	return slices.Clone(s.configs)
}

// Pipeline exposes the pipeline for diagnostics.
func (s *Store) Pipeline() *Pipeline {
	return s.pipeline
}

// SetSource replaces a source's data; nil data resolves to an empty source.
func (s *Store) SetSource(layerType entity.LayerType, data *geojson.FeatureCollection) {
	current := s.sources[layerType]

	status := StatusReady
	if data == nil || len(data.Features) == 0 {
		status = StatusEmpty
	}
	if data == nil {
		data = geojson.NewFeatureCollection()
	}

	s.sources[layerType] = Source{
		Status:   status,
		Data:     data,
		Revision: current.Revision + 1,
	}
	s.rebuild()
}

// SetSourceError marks a source as failed while keeping its last data.
func (s *Store) SetSourceError(layerType entity.LayerType) {
	current := s.sources[layerType]
	current.Status = StatusError
	s.sources[layerType] = current
	s.rebuild()
}

// SetVisible toggles a layer's visibility.
func (s *Store) SetVisible(layerID string, visible bool) error {
	return s.updateConfig(layerID, func(cfg *Config) {
		cfg.Visible = visible
	})
}

// SetOpacity changes a layer's opacity, clamped to [0,1].
func (s *Store) SetOpacity(layerID string, opacity float64) error {
	return s.updateConfig(layerID, func(cfg *Config) {
		cfg.Opacity = clampOpacity(opacity)
	})
}

// Subscribe registers a listener called with the layer stack after every change.
func (s *Store) Subscribe(listener func([]entity.Layer)) service.Subscription {
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener

	return service.NewSubscription(func() {
		delete(s.listeners, id)
	})
}

func (s *Store) updateConfig(layerID string, apply func(cfg *Config)) error {
	idx := slices.IndexFunc(s.configs, func(cfg Config) bool { return cfg.ID == layerID })
	if idx < 0 {
		return domainerrors.ErrUnknownLayer.WithDetails(layerID)
	}

	apply(&s.configs[idx])
	s.rebuild()

	return nil
}

func (s *Store) rebuild() {
	s.layers = s.pipeline.Build(s.configs, s.sources)

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		if listener, ok := s.listeners[id]; ok {
			listener(s.layers)
		}
	}
}
