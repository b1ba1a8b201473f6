package bridge

import (
	"slices"
	"sync"

	"terrimap/internal/domain/service"
	"terrimap/internal/errors"
	"terrimap/internal/prompt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// MapProxy is the server-side service.MapHandle of a connected map client.
// It mirrors which sources and layers exist so reads never wait on the
// client, and projects with the last reported viewport.
type MapProxy struct {
	out sender

	mu        sync.RWMutex
	loaded    bool
	sources   map[string]struct{}
	layers    map[string]struct{}
	projector prompt.WebMercatorProjector
	listeners map[int]func(service.MapEvent)
	nextID    int
}

var _ service.MapHandle = (*MapProxy)(nil)

// NewMapProxy creates a proxy for a map that has not loaded yet.
func NewMapProxy(out sender) *MapProxy {
	return &MapProxy{
		out:       out,
		sources:   make(map[string]struct{}),
		layers:    make(map[string]struct{}),
		listeners: make(map[int]func(service.MapEvent)),
	}
}

// Project implements service.Projector with the last reported viewport.
func (m *MapProxy) Project(point orb.Point) (service.Pixel, error) {
	m.mu.RLock()
	projector := m.projector
	m.mu.RUnlock()

	if projector.Viewport.Width <= 0 || projector.Viewport.Height <= 0 {
		return service.Pixel{}, errors.New("viewport not reported yet")
	}

	return projector.Project(point)
}

func (m *MapProxy) Loaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.loaded
}

func (m *MapProxy) HasSource(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.sources[id]

	return ok
}

func (m *MapProxy) AddSource(id string, data *geojson.FeatureCollection) error {
	m.mu.Lock()
	if _, ok := m.sources[id]; ok {
		m.mu.Unlock()
		return errors.Errorf("source %s already exists", id)
	}
	m.sources[id] = struct{}{}
	m.mu.Unlock()

	m.out.Send(TypeMapAddSource, sourcePayload{ID: id, Data: data})

	return nil
}

func (m *MapProxy) SetSourceData(id string, data *geojson.FeatureCollection) error {
	if !m.HasSource(id) {
		return errors.Errorf("source %s not found", id)
	}
	m.out.Send(TypeMapSetSourceData, sourcePayload{ID: id, Data: data})

	return nil
}

func (m *MapProxy) HasLayer(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.layers[id]

	return ok
}

func (m *MapProxy) AddLayer(spec service.LayerSpec) error {
	m.mu.Lock()
	if _, ok := m.layers[spec.ID]; ok {
		m.mu.Unlock()
		return errors.Errorf("layer %s already exists", spec.ID)
	}
	if _, ok := m.sources[spec.Source]; !ok {
		m.mu.Unlock()
		return errors.Errorf("layer %s references missing source %s", spec.ID, spec.Source)
	}
	m.layers[spec.ID] = struct{}{}
	m.mu.Unlock()

	m.out.Send(TypeMapAddLayer, spec)

	return nil
}

func (m *MapProxy) SetPaintProperty(layerID, name string, value any) error {
	if !m.HasLayer(layerID) {
		return errors.Errorf("layer %s not found", layerID)
	}
	m.out.Send(TypeMapSetPaint, propertyPayload{LayerID: layerID, Name: name, Value: value})

	return nil
}

func (m *MapProxy) SetLayoutProperty(layerID, name string, value any) error {
	if !m.HasLayer(layerID) {
		return errors.Errorf("layer %s not found", layerID)
	}
	if name == "visibility" {
		m.out.Send(TypeMapSetVisibility, visibilityPayload{LayerID: layerID, Visibility: value})
		return nil
	}
	m.out.Send(TypeMapSetLayout, propertyPayload{LayerID: layerID, Name: name, Value: value})

	return nil
}

func (m *MapProxy) FitBounds(bound orb.Bound) error {
	m.out.Send(TypeMapFitBounds, boundsPayload{
		Bounds: [4]float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()},
	})

	return nil
}

func (m *MapProxy) Subscribe(listener func(service.MapEvent)) service.Subscription {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = listener
	m.mu.Unlock()

	return service.NewSubscription(func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	})
}

// handleLoad records the first load and its viewport.
func (m *MapProxy) handleLoad(viewport *prompt.Viewport) {
	m.mu.Lock()
	m.loaded = true
	if viewport != nil {
		m.projector.Viewport = *viewport
	}
	m.mu.Unlock()

	m.emit(service.MapEvent{Type: service.MapEventLoad})
}

// handleStyle forgets every source and layer; the basemap swap removed them.
func (m *MapProxy) handleStyle() {
	m.mu.Lock()
	m.sources = make(map[string]struct{})
	m.layers = make(map[string]struct{})
	m.mu.Unlock()

	m.emit(service.MapEvent{Type: service.MapEventStyleChanged})
}

func (m *MapProxy) handleViewport(viewport prompt.Viewport) {
	m.mu.Lock()
	m.projector.Viewport = viewport
	m.mu.Unlock()

	m.emit(service.MapEvent{Type: service.MapEventViewport})
}

func (m *MapProxy) handlePointer(eventType service.MapEventType, payload pointerPayload) {
	m.emit(service.MapEvent{
		Type:       eventType,
		Point:      payload.LngLat,
		FeatureIDs: slices.Clone(payload.FeatureIDs),
	})
}

func (m *MapProxy) emit(event service.MapEvent) {
	m.mu.RLock()
	ids := make([]int, 0, len(m.listeners))
	for id := range m.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]func(service.MapEvent), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, m.listeners[id])
	}
	m.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}
