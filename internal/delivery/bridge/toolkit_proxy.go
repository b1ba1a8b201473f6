package bridge

import (
	"slices"
	"sync"

	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"
	"terrimap/internal/errors"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
)

// ToolkitProxy is the server-side service.DrawToolkit. The feature mirror is
// updated both by commands sent from here and by events the client reports,
// so reads answer from memory.
type ToolkitProxy struct {
	out sender

	mu        sync.RWMutex
	ready     bool
	features  []*geojson.Feature
	selected  []string
	listeners map[int]func(service.DrawEvent)
	nextID    int
}

var _ service.DrawToolkit = (*ToolkitProxy)(nil)

// NewToolkitProxy creates a proxy for a toolkit that is not ready yet.
func NewToolkitProxy(out sender) *ToolkitProxy {
	return &ToolkitProxy{
		out:       out,
		listeners: make(map[int]func(service.DrawEvent)),
	}
}

// Attach implements service.ToolkitFactory. It fails until the client
// reported its toolkit ready.
func (t *ToolkitProxy) Attach(service.MapHandle) (service.DrawToolkit, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.ready {
		return nil, errors.New("drawing toolkit not ready on the client")
	}

	return t, nil
}

func (t *ToolkitProxy) ChangeMode(mode string, opts service.ModeOptions) error {
	t.out.Send(TypeDrawChangeMode, modePayload{Mode: mode, FeatureID: opts.FeatureID})
	return nil
}

func (t *ToolkitProxy) Add(feature *geojson.Feature) ([]string, error) {
	if feature == nil || feature.Geometry == nil {
		return nil, errors.New("feature without geometry")
	}

	clone := cloneFeature(feature)
	id, ok := entity.ToolkitID(clone)
	if !ok {
		id = uuid.NewString()
	}
	clone.ID = id

	t.mu.Lock()
	t.upsert(clone)
	t.mu.Unlock()

	t.out.Send(TypeDrawAdd, featurePayload{Feature: clone})

	return []string{id}, nil
}

func (t *ToolkitProxy) Get(id string) *geojson.Feature {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if idx := t.index(id); idx >= 0 {
		return cloneFeature(t.features[idx])
	}

	return nil
}

func (t *ToolkitProxy) GetAll() *geojson.FeatureCollection {
	t.mu.RLock()
	defer t.mu.RUnlock()

	fc := geojson.NewFeatureCollection()
	for _, f := range t.features {
		fc.Append(cloneFeature(f))
	}

	return fc
}

func (t *ToolkitProxy) GetSelectedIDs() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.selected)
}

func (t *ToolkitProxy) Delete(ids ...string) error {
	t.mu.Lock()
	t.remove(ids)
	t.mu.Unlock()

	t.out.Send(TypeDrawRemove, idsPayload{IDs: slices.Clone(ids)})

	return nil
}

func (t *ToolkitProxy) DeleteAll() error {
	t.mu.Lock()
	t.features = nil
	t.selected = nil
	t.mu.Unlock()

	t.out.Send(TypeDrawDeleteAll, nil)

	return nil
}

func (t *ToolkitProxy) SetFeatureProperty(id, key string, value any) error {
	t.mu.Lock()
	idx := t.index(id)
	if idx < 0 {
		t.mu.Unlock()
		return errors.Errorf("feature %s not found", id)
	}
	t.features[idx].Properties[key] = value
	t.mu.Unlock()

	t.out.Send(TypeDrawSetProperty, featurePropertyPayload{ID: id, Key: key, Value: value})

	return nil
}

func (t *ToolkitProxy) SetPointColor(color string) error {
	t.out.Send(TypeDrawSetPointColor, colorPayload{Color: color})
	return nil
}

func (t *ToolkitProxy) Subscribe(listener func(service.DrawEvent)) service.Subscription {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = listener
	t.mu.Unlock()

	return service.NewSubscription(func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	})
}

func (t *ToolkitProxy) handleReady() {
	t.mu.Lock()
	t.ready = true
	t.mu.Unlock()
}

// handleFeatures applies a create, update or delete the client reported and
// forwards it to the listeners.
func (t *ToolkitProxy) handleFeatures(eventType service.DrawEventType, payload featuresPayload) {
	features := make([]*geojson.Feature, 0, len(payload.Features))
	for _, f := range payload.Features {
		if f == nil {
			continue
		}
		if id, ok := entity.ToolkitID(f); ok {
			f.ID = id
		}
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		features = append(features, f)
	}

	t.mu.Lock()
	switch eventType {
	case service.DrawEventDelete:
		ids := make([]string, 0, len(features))
		for _, f := range features {
			if id, ok := entity.ToolkitID(f); ok {
				ids = append(ids, id)
			}
		}
		t.remove(ids)
	default:
		for _, f := range features {
			if _, ok := entity.ToolkitID(f); ok {
				t.upsert(cloneFeature(f))
			}
		}
	}
	t.mu.Unlock()

	t.emit(service.DrawEvent{Type: eventType, Features: features, Action: payload.Action})
}

// handleSelection replaces the selection; features come from the mirror
// when the client only sent ids.
func (t *ToolkitProxy) handleSelection(payload featuresPayload, ids []string) {
	t.mu.Lock()
	selected := make([]*geojson.Feature, 0, len(payload.Features)+len(ids))
	for _, f := range payload.Features {
		if f == nil {
			continue
		}
		if id, ok := entity.ToolkitID(f); ok {
			f.ID = id
			selected = append(selected, f)
		}
	}
	for _, id := range ids {
		if idx := t.index(id); idx >= 0 {
			selected = append(selected, cloneFeature(t.features[idx]))
		}
	}

	t.selected = t.selected[:0]
	for _, f := range selected {
		id, _ := entity.ToolkitID(f)
		t.selected = append(t.selected, id)
	}
	t.mu.Unlock()

	t.emit(service.DrawEvent{Type: service.DrawEventSelectionChange, Features: selected})
}

func (t *ToolkitProxy) emit(event service.DrawEvent) {
	t.mu.RLock()
	ids := make([]int, 0, len(t.listeners))
	for id := range t.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]func(service.DrawEvent), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, t.listeners[id])
	}
	t.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

func (t *ToolkitProxy) upsert(feature *geojson.Feature) {
	id, _ := entity.ToolkitID(feature)
	if idx := t.index(id); idx >= 0 {
		t.features[idx] = feature
		return
	}
	t.features = append(t.features, feature)
}

func (t *ToolkitProxy) remove(ids []string) {
	t.features = slices.DeleteFunc(t.features, func(f *geojson.Feature) bool {
		id, _ := entity.ToolkitID(f)
		return slices.Contains(ids, id)
	})
	t.selected = slices.DeleteFunc(t.selected, func(id string) bool {
		return slices.Contains(ids, id)
	})
}

func (t *ToolkitProxy) index(id string) int {
	return slices.IndexFunc(t.features, func(f *geojson.Feature) bool {
		fid, _ := entity.ToolkitID(f)
		return fid == id
	})
}

func cloneFeature(feature *geojson.Feature) *geojson.Feature {
	clone := geojson.NewFeature(feature.Geometry)
	clone.ID = feature.ID
	clone.BBox = feature.BBox
	for key, value := range feature.Properties {
		clone.Properties[key] = value
	}

	return clone
}
