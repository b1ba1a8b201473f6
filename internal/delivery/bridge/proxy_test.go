package bridge

import (
	"encoding/json"
	"sync"
	"testing"

	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"
	"terrimap/internal/prompt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	Type    string
	Payload json.RawMessage
}

// recorder captures outbound commands the way the client would see them.
type recorder struct {
	mu       sync.Mutex
	messages []sent
}

func (r *recorder) Send(msgType string, payload any) {
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, sent{Type: msgType, Payload: raw})
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]string, 0, len(r.messages))
	for _, msg := range r.messages {
		types = append(types, msg.Type)
	}

	return types
}

func (r *recorder) last(t *testing.T, out any) string {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.messages)
	msg := r.messages[len(r.messages)-1]
	if out != nil {
		require.NoError(t, json.Unmarshal(msg.Payload, out))
	}

	return msg.Type
}

func TestMapProxy_MirrorsSourcesAndLayers(t *testing.T) {
	out := &recorder{}
	m := NewMapProxy(out)

	require.Error(t, m.SetSourceData("territories", geojson.NewFeatureCollection()))
	require.Error(t, m.AddLayer(service.LayerSpec{ID: "territories-fill", Source: "territories"}))

	require.NoError(t, m.AddSource("territories", geojson.NewFeatureCollection()))
	require.Error(t, m.AddSource("territories", geojson.NewFeatureCollection()))
	require.NoError(t, m.AddLayer(service.LayerSpec{ID: "territories-fill", Source: "territories"}))
	assert.True(t, m.HasSource("territories"))
	assert.True(t, m.HasLayer("territories-fill"))

	require.NoError(t, m.SetLayoutProperty("territories-fill", "visibility", "none"))
	var visibility visibilityPayload
	assert.Equal(t, TypeMapSetVisibility, out.last(t, &visibility))
	assert.Equal(t, "none", visibility.Visibility)

	require.NoError(t, m.SetPaintProperty("territories-fill", "fill-opacity", 0.4))
	assert.Equal(t, TypeMapSetPaint, out.last(t, nil))

	// a basemap swap drops everything the client had
	m.handleStyle()
	assert.False(t, m.HasSource("territories"))
	assert.False(t, m.HasLayer("territories-fill"))

	assert.Equal(t, []string{TypeMapAddSource, TypeMapAddLayer, TypeMapSetVisibility, TypeMapSetPaint}, out.types())
}

func TestMapProxy_Events(t *testing.T) {
	m := NewMapProxy(&recorder{})

	var events []service.MapEvent
	sub := m.Subscribe(func(event service.MapEvent) {
		events = append(events, event)
	})

	_, err := m.Project(orb.Point{0, 0})
	require.Error(t, err)

	m.handleLoad(&prompt.Viewport{Center: orb.Point{0, 0}, Zoom: 1, Width: 800, Height: 600})
	assert.True(t, m.Loaded())

	pixel, err := m.Project(orb.Point{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 400, pixel.X, 1e-9)
	assert.InDelta(t, 300, pixel.Y, 1e-9)

	m.handlePointer(service.MapEventClick, pointerPayload{LngLat: orb.Point{1, 2}, FeatureIDs: []string{"T1"}})
	sub.Unsubscribe()
	m.handleViewport(prompt.Viewport{Width: 10, Height: 10})

	require.Len(t, events, 2)
	assert.Equal(t, service.MapEventLoad, events[0].Type)
	assert.Equal(t, service.MapEventClick, events[1].Type)
	assert.Equal(t, orb.Point{1, 2}, events[1].Point)
	assert.Equal(t, []string{"T1"}, events[1].FeatureIDs)
}

func TestToolkitProxy_AttachRequiresReady(t *testing.T) {
	tk := NewToolkitProxy(&recorder{})

	_, err := tk.Attach(nil)
	require.Error(t, err)

	tk.handleReady()
	attached, err := tk.Attach(nil)
	require.NoError(t, err)
	assert.Same(t, tk, attached)
}

func TestToolkitProxy_Commands(t *testing.T) {
	out := &recorder{}
	tk := NewToolkitProxy(out)

	square := geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}})
	square.Properties[entity.PropID] = "T1"
	ids, err := tk.Add(square)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.NotEmpty(t, ids[0])
	assert.Nil(t, square.ID, "caller's feature must not be touched")

	var added featurePayload
	assert.Equal(t, TypeDrawAdd, out.last(t, &added))
	assert.Equal(t, ids[0], added.Feature.ID)

	require.NoError(t, tk.SetFeatureProperty(ids[0], entity.PropSelected, true))
	assert.Equal(t, true, tk.Get(ids[0]).Properties[entity.PropSelected])
	require.Error(t, tk.SetFeatureProperty("missing", entity.PropSelected, true))

	_, err = tk.Add(geojson.NewFeature(nil))
	require.Error(t, err)

	require.NoError(t, tk.Delete(ids[0]))
	assert.Nil(t, tk.Get(ids[0]))
	var removed idsPayload
	assert.Equal(t, TypeDrawRemove, out.last(t, &removed))
	assert.Equal(t, ids, removed.IDs)

	require.NoError(t, tk.DeleteAll())
	assert.Empty(t, tk.GetAll().Features)
}

func TestToolkitProxy_ClientEvents(t *testing.T) {
	tk := NewToolkitProxy(&recorder{})

	var events []service.DrawEvent
	tk.Subscribe(func(event service.DrawEvent) {
		events = append(events, event)
	})

	drawn := geojson.NewFeature(orb.Point{121.5, 25})
	drawn.ID = "abc"
	tk.handleFeatures(service.DrawEventCreate, featuresPayload{Features: []*geojson.Feature{drawn, nil}})
	require.NotNil(t, tk.Get("abc"))

	tk.handleSelection(featuresPayload{}, []string{"abc", "missing"})
	assert.Equal(t, []string{"abc"}, tk.GetSelectedIDs())

	tk.handleFeatures(service.DrawEventDelete, featuresPayload{Features: []*geojson.Feature{drawn}})
	assert.Nil(t, tk.Get("abc"))
	assert.Empty(t, tk.GetSelectedIDs())

	require.Len(t, events, 3)
	assert.Equal(t, service.DrawEventCreate, events[0].Type)
	assert.Len(t, events[0].Features, 1)
	assert.Equal(t, service.DrawEventSelectionChange, events[1].Type)
	require.Len(t, events[1].Features, 1)
	assert.Equal(t, "abc", events[1].Features[0].ID)
	assert.Equal(t, service.DrawEventDelete, events[2].Type)
}

func TestPresenterProxy(t *testing.T) {
	out := &recorder{}
	p := NewPresenterProxy(out)

	p.OpenLocationForm(service.LocationDraft{
		ScratchID:    "s1",
		Geometry:     orb.Point{121.5, 25},
		LocationType: entity.LocationTypePotential,
	})
	var form struct {
		Kind         string              `json:"kind"`
		ScratchID    string              `json:"scratchId"`
		Geometry     *geojson.Geometry   `json:"geometry"`
		LocationType entity.LocationType `json:"locationType"`
	}
	assert.Equal(t, TypeUIForm, out.last(t, &form))
	assert.Equal(t, "s1", form.ScratchID)
	assert.Equal(t, entity.LocationTypePotential, form.LocationType)
	assert.Equal(t, orb.Point{121.5, 25}, form.Geometry.Geometry())

	p.HideEditPrompt()
	var hidden promptPayload
	assert.Equal(t, TypeUIPrompt, out.last(t, &hidden))
	assert.False(t, hidden.Visible)

	p.Notify(service.NoticeError, "boom")
	p.SetCursor("crosshair")
	p.ShowProgress(40, true)

	assert.Equal(t, []string{TypeUIForm, TypeUIPrompt, TypeUIToast, TypeUICursor, TypeUIProgress}, out.types())
}
