package fake

import (
	"fmt"

	"terrimap/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Map is an in-memory service.MapHandle.
type Map struct {
	IsLoaded bool
	Sources  map[string]*geojson.FeatureCollection
	Layers   map[string]service.LayerSpec
	Order    []string
	Fitted   []orb.Bound

	SourceUpdates int
	// FailLayer makes AddLayer fail for the given layer id.
	FailLayer map[string]bool

	// ProjectFunc defaults to lon/lat as x/y.
	ProjectFunc func(orb.Point) service.Pixel

	listeners map[int]func(service.MapEvent)
	nextSub   int
}

var _ service.MapHandle = (*Map)(nil)

// NewMap creates a loaded, empty map.
func NewMap() *Map {
	return &Map{
		IsLoaded:  true,
		Sources:   make(map[string]*geojson.FeatureCollection),
		Layers:    make(map[string]service.LayerSpec),
		FailLayer: make(map[string]bool),
		listeners: make(map[int]func(service.MapEvent)),
	}
}

func (m *Map) Project(point orb.Point) (service.Pixel, error) {
	if m.ProjectFunc != nil {
		return m.ProjectFunc(point), nil
	}

	return service.Pixel{X: point.Lon(), Y: point.Lat()}, nil
}

func (m *Map) Loaded() bool { return m.IsLoaded }

func (m *Map) HasSource(id string) bool {
	_, ok := m.Sources[id]
	return ok
}

func (m *Map) AddSource(id string, data *geojson.FeatureCollection) error {
	if m.HasSource(id) {
		return fmt.Errorf("source %s already exists", id)
	}
	m.Sources[id] = data

	return nil
}

func (m *Map) SetSourceData(id string, data *geojson.FeatureCollection) error {
	if !m.HasSource(id) {
		return fmt.Errorf("source %s not found", id)
	}
	m.Sources[id] = data
	m.SourceUpdates++

	return nil
}

func (m *Map) HasLayer(id string) bool {
	_, ok := m.Layers[id]
	return ok
}

func (m *Map) AddLayer(spec service.LayerSpec) error {
	if m.FailLayer[spec.ID] {
		return fmt.Errorf("layer %s rejected", spec.ID)
	}
	if m.HasLayer(spec.ID) {
		return fmt.Errorf("layer %s already exists", spec.ID)
	}
	if !m.HasSource(spec.Source) {
		return fmt.Errorf("layer %s references missing source %s", spec.ID, spec.Source)
	}
	spec.Paint = copyMap(spec.Paint)
	spec.Layout = copyMap(spec.Layout)
	m.Layers[spec.ID] = spec
	m.Order = append(m.Order, spec.ID)

	return nil
}

func (m *Map) SetPaintProperty(layerID, name string, value any) error {
	spec, ok := m.Layers[layerID]
	if !ok {
		return fmt.Errorf("layer %s not found", layerID)
	}
	spec.Paint[name] = value
	m.Layers[layerID] = spec

	return nil
}

func (m *Map) SetLayoutProperty(layerID, name string, value any) error {
	spec, ok := m.Layers[layerID]
	if !ok {
		return fmt.Errorf("layer %s not found", layerID)
	}
	spec.Layout[name] = value
	m.Layers[layerID] = spec

	return nil
}

func (m *Map) FitBounds(bound orb.Bound) error {
	m.Fitted = append(m.Fitted, bound)

	return nil
}

func (m *Map) Subscribe(listener func(service.MapEvent)) service.Subscription {
	id := m.nextSub
	m.nextSub++
	m.listeners[id] = listener

	return service.NewSubscription(func() { delete(m.listeners, id) })
}

// Emit delivers an event to every listener.
func (m *Map) Emit(event service.MapEvent) {
	for _, listener := range m.listeners {
		listener(event)
	}
}

// SwapStyle drops every source and layer, as a basemap change does.
func (m *Map) SwapStyle() {
	m.Sources = make(map[string]*geojson.FeatureCollection)
	m.Layers = make(map[string]service.LayerSpec)
	m.Order = nil
}

// Visibility returns the layout visibility of a layer.
func (m *Map) Visibility(layerID string) string {
	v, _ := m.Layers[layerID].Layout["visibility"].(string)
	return v
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}

	return out
}
