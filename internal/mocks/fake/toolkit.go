// Package fake holds in-memory stand-ins for the map client capabilities.
package fake

import (
	"fmt"
	"slices"

	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"

	"github.com/paulmach/orb/geojson"
)

// ModeChange records one ChangeMode call.
type ModeChange struct {
	Mode string
	Opts service.ModeOptions
}

// Toolkit is an in-memory service.DrawToolkit.
type Toolkit struct {
	features  []*geojson.Feature
	selected  []string
	nextID    int
	listeners map[int]func(service.DrawEvent)
	nextSub   int

	Mode        string
	Modes       []ModeChange
	PointColors []string
	Deleted     []string
	DeleteAlls  int

	// FailAdd makes Add fail for features whose properties.id is listed.
	FailAdd map[string]bool
}

var _ service.DrawToolkit = (*Toolkit)(nil)

// NewToolkit creates an empty toolkit in simple_select.
func NewToolkit() *Toolkit {
	return &Toolkit{
		Mode:      "simple_select",
		listeners: make(map[int]func(service.DrawEvent)),
		FailAdd:   make(map[string]bool),
	}
}

func (t *Toolkit) ChangeMode(mode string, opts service.ModeOptions) error {
	t.Mode = mode
	t.Modes = append(t.Modes, ModeChange{Mode: mode, Opts: opts})

	return nil
}

func (t *Toolkit) Add(feature *geojson.Feature) ([]string, error) {
	if id, ok := entity.PersistedID(feature); ok && t.FailAdd[id] {
		return nil, fmt.Errorf("invalid geometry for %s", id)
	}

	id, ok := entity.ToolkitID(feature)
	if !ok {
		t.nextID++
		id = fmt.Sprintf("draw-%d", t.nextID)
	}
	clone := cloneFeature(feature)
	clone.ID = id

	if idx := t.index(id); idx >= 0 {
		t.features[idx] = clone
	} else {
		t.features = append(t.features, clone)
	}

	return []string{id}, nil
}

func (t *Toolkit) Get(id string) *geojson.Feature {
	if idx := t.index(id); idx >= 0 {
		return t.features[idx]
	}

	return nil
}

func (t *Toolkit) GetAll() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.Features = slices.Clone(t.features)

	return fc
}

func (t *Toolkit) GetSelectedIDs() []string {
	return slices.Clone(t.selected)
}

func (t *Toolkit) Delete(ids ...string) error {
	for _, id := range ids {
		if idx := t.index(id); idx >= 0 {
			t.features = slices.Delete(t.features, idx, idx+1)
			t.Deleted = append(t.Deleted, id)
		}
	}
	t.selected = slices.DeleteFunc(t.selected, func(id string) bool { return slices.Contains(ids, id) })

	return nil
}

func (t *Toolkit) DeleteAll() error {
	t.features = nil
	t.selected = nil
	t.DeleteAlls++

	return nil
}

func (t *Toolkit) SetFeatureProperty(id, key string, value any) error {
	feature := t.Get(id)
	if feature == nil {
		return fmt.Errorf("feature %s not found", id)
	}
	if feature.Properties == nil {
		feature.Properties = geojson.Properties{}
	}
	feature.Properties[key] = value

	return nil
}

func (t *Toolkit) SetPointColor(color string) error {
	t.PointColors = append(t.PointColors, color)

	return nil
}

func (t *Toolkit) Subscribe(listener func(service.DrawEvent)) service.Subscription {
	id := t.nextSub
	t.nextSub++
	t.listeners[id] = listener

	return service.NewSubscription(func() { delete(t.listeners, id) })
}

// Select sets the toolkit selection as a user click would.
func (t *Toolkit) Select(ids ...string) {
	t.selected = slices.Clone(ids)
}

// Emit delivers an event to every listener.
func (t *Toolkit) Emit(event service.DrawEvent) {
	for _, listener := range t.listeners {
		listener(event)
	}
}

// SelectedByProperty returns the ids whose "selected" property is true.
func (t *Toolkit) SelectedByProperty() []string {
	var ids []string
	for _, f := range t.features {
		if selected, _ := f.Properties[entity.PropSelected].(bool); selected {
			id, _ := entity.ToolkitID(f)
			ids = append(ids, id)
		}
	}

	return ids
}

func (t *Toolkit) index(id string) int {
	return slices.IndexFunc(t.features, func(f *geojson.Feature) bool {
		fid, _ := entity.ToolkitID(f)
		return fid == id
	})
}

func cloneFeature(feature *geojson.Feature) *geojson.Feature {
	clone := geojson.NewFeature(feature.Geometry)
	clone.ID = feature.ID
	for key, value := range feature.Properties {
		clone.Properties[key] = value
	}

	return clone
}

// ToolkitFactory attaches a Toolkit, failing the first Failures attempts.
type ToolkitFactory struct {
	Toolkit  *Toolkit
	Failures int
	Attempts int
}

func (f *ToolkitFactory) Attach(service.MapHandle) (service.DrawToolkit, error) {
	f.Attempts++
	if f.Attempts <= f.Failures {
		return nil, fmt.Errorf("map style not ready (attempt %d)", f.Attempts)
	}

	return f.Toolkit, nil
}
