package entity

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
)

func TestClassifyGeometry(t *testing.T) {
	tests := []struct {
		geometryType string
		want         EntityKind
	}{
		{geometryType: "Polygon", want: EntityKindTerritory},
		{geometryType: "MultiPolygon", want: EntityKindTerritory},
		{geometryType: "Point", want: EntityKindLocation},
		{geometryType: "LineString", want: EntityKindUnsupported},
		{geometryType: "MultiPoint", want: EntityKindUnsupported},
		{geometryType: "GeometryCollection", want: EntityKindUnsupported},
		{geometryType: "", want: EntityKindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.geometryType, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyGeometry(tt.geometryType))
		})
	}
}

func TestClassifyOrb(t *testing.T) {
	assert.Equal(t, EntityKindTerritory, ClassifyOrb(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))
	assert.Equal(t, EntityKindLocation, ClassifyOrb(orb.Point{1, 2}))
	assert.Equal(t, EntityKindUnsupported, ClassifyOrb(orb.LineString{{0, 0}, {1, 1}}))
	assert.Equal(t, EntityKindUnsupported, ClassifyOrb(nil))
}

func TestPersistedID(t *testing.T) {
	f := geojson.NewFeature(orb.Point{0, 0})
	_, ok := PersistedID(f)
	assert.False(t, ok)

	f.Properties[PropID] = "T1"
	id, ok := PersistedID(f)
	assert.True(t, ok)
	assert.Equal(t, "T1", id)

	f.Properties[PropID] = float64(42)
	id, ok = PersistedID(f)
	assert.True(t, ok)
	assert.Equal(t, "42", id)

	f.Properties[PropID] = ""
	_, ok = PersistedID(f)
	assert.False(t, ok)
}

func TestToolModeToolkitMode(t *testing.T) {
	assert.Equal(t, "simple_select", ToolModeNone.ToolkitMode())
	assert.Equal(t, "draw_point", ToolModeDrawPoint.ToolkitMode())
	assert.False(t, ToolMode("lasso").IsValid())
}
