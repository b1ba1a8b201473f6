package render

import (
	"log/slog"
	"testing"

	"terrimap/internal/domain/entity"
	"terrimap/internal/layer"
	"terrimap/internal/mocks/fake"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayers() []entity.Layer {
	territories := geojson.NewFeatureCollection()
	territories.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))

	current := geojson.NewFeatureCollection()
	current.Append(geojson.NewFeature(orb.Point{0.5, 0.5}))

	rivers := geojson.NewFeatureCollection()
	rivers.Append(geojson.NewFeature(orb.LineString{{0, 0}, {2, 2}}))

	store := layer.NewStore(nil)
	store.SetSource(entity.LayerTypeTerritories, territories)
	store.SetSource(entity.LayerTypeCurrentLocations, current)
	store.SetSource(entity.LayerTypeRivers, rivers)

	return store.Layers()
}

func newAdapter() (*Adapter, *fake.Map) {
	m := fake.NewMap()
	return NewAdapter(slog.New(slog.DiscardHandler), m), m
}

func TestAdapter_Render_TypeSpecificLayers(t *testing.T) {
	adapter, m := newAdapter()

	adapter.Render(sampleLayers())

	assert.True(t, m.HasSource("territories"))
	assert.Equal(t, kindFill, m.Layers["territories-fill"].Type)
	assert.Equal(t, kindLine, m.Layers["territories-outline"].Type)
	assert.Equal(t, kindCircle, m.Layers["current-locations-circle"].Type)
	assert.Equal(t, kindLine, m.Layers["rivers-line"].Type)

	// empty layers get no source
	assert.False(t, m.HasSource("potential-locations"))
	assert.False(t, m.HasSource("population-analysis"))
}

func TestAdapter_Render_VisibilityFromFlag(t *testing.T) {
	adapter, m := newAdapter()
	layers := sampleLayers()

	adapter.Render(layers)
	assert.Equal(t, "visible", m.Visibility("territories-fill"))
	assert.Equal(t, "none", m.Visibility("rivers-line"))

	for i := range layers {
		layers[i].Visible = !layers[i].Visible
	}
	adapter.Render(layers)

	assert.Equal(t, "none", m.Visibility("territories-fill"))
	assert.Equal(t, "none", m.Visibility("territories-outline"))
	assert.Equal(t, "visible", m.Visibility("rivers-line"))
}

func TestAdapter_Render_Idempotent(t *testing.T) {
	adapter, m := newAdapter()
	layers := sampleLayers()

	adapter.Render(layers)
	order := append([]string(nil), m.Order...)
	adapter.Render(layers)
	adapter.Render(layers)

	assert.Equal(t, order, m.Order)
	assert.Equal(t, 6, m.SourceUpdates)
}

func TestAdapter_Render_OpacityPaint(t *testing.T) {
	adapter, m := newAdapter()
	layers := sampleLayers()
	layers[1].Opacity = 0.25

	adapter.Render(layers)

	assert.Equal(t, 0.25, m.Layers["current-locations-circle"].Paint["circle-opacity"])
}

func TestAdapter_OnStyleChanged_Restores(t *testing.T) {
	adapter, m := newAdapter()
	adapter.Render(sampleLayers())
	before := len(m.Layers)

	m.SwapStyle()
	require.Empty(t, m.Layers)

	adapter.OnStyleChanged()

	assert.Len(t, m.Layers, before)
	assert.Equal(t, "visible", m.Visibility("territories-fill"))
	assert.Equal(t, "none", m.Visibility("rivers-line"))
}

func TestAdapter_Render_LayerFailureDoesNotStopOthers(t *testing.T) {
	adapter, m := newAdapter()
	m.FailLayer["territories-fill"] = true

	adapter.Render(sampleLayers())

	assert.False(t, m.HasLayer("territories-fill"))
	assert.True(t, m.HasLayer("territories-outline"))
	assert.True(t, m.HasLayer("current-locations-circle"))
	assert.True(t, m.HasLayer("rivers-line"))
}

func TestAdapter_Render_DeferredUntilLoaded(t *testing.T) {
	adapter, m := newAdapter()
	m.IsLoaded = false

	adapter.Render(sampleLayers())
	assert.Empty(t, m.Sources)

	m.IsLoaded = true
	adapter.OnStyleChanged()
	assert.True(t, m.HasSource("territories"))
}

func TestAdapter_Render_SourceEmptiedAfterData(t *testing.T) {
	adapter, m := newAdapter()
	layers := sampleLayers()
	adapter.Render(layers)

	layers[0].Data = geojson.NewFeatureCollection()
	adapter.Render(layers)

	assert.Empty(t, m.Sources["territories"].Features)
}
