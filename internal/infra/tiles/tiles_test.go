package tiles

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"terrimap/config"
	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	mockrepository "terrimap/internal/mocks/repository"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testTile() maptile.Tile {
	return maptile.At(orb.Point{121.5, 25.0}, 10)
}

// encodeTile builds one MVT tile holding a small square and a line around
// the tile centre.
func encodeTile(t *testing.T, tile maptile.Tile, layerName string) []byte {
	t.Helper()

	c := tile.Bound().Center()
	square := orb.Polygon{{
		{c[0] - 0.01, c[1] - 0.01},
		{c[0] + 0.01, c[1] - 0.01},
		{c[0] + 0.01, c[1] + 0.01},
		{c[0] - 0.01, c[1] + 0.01},
		{c[0] - 0.01, c[1] - 0.01},
	}}
	line := orb.LineString{{c[0] - 0.02, c[1]}, {c[0] + 0.02, c[1]}}

	fc := geojson.NewFeatureCollection()
	area := geojson.NewFeature(square)
	area.Properties["name"] = "District 1"
	fc.Append(area)
	river := geojson.NewFeature(line)
	river.Properties["name"] = "Tamsui"
	fc.Append(river)

	layers := mvt.Layers{mvt.NewLayer(layerName, fc)}
	layers.ProjectToTile(tile)

	data, err := mvt.Marshal(layers)
	require.NoError(t, err)

	return data
}

func TestMVTDecoder_FiltersByLayerGeometry(t *testing.T) {
	tile := testTile()
	data := encodeTile(t, tile, "admin")

	tests := []struct {
		name      string
		layerType entity.LayerType
		wantName  string
	}{
		{name: "boundaries keep polygons", layerType: entity.LayerTypeBoundaries, wantName: "District 1"},
		{name: "rivers keep lines", layerType: entity.LayerTypeRivers, wantName: "Tamsui"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features, err := NewMVTDecoder("admin", tt.layerType).DecodeTile(data, tile)
			require.NoError(t, err)
			require.Len(t, features, 1)
			assert.Equal(t, tt.wantName, features[0].Properties["name"])

			center := features[0].Geometry.Bound().Center()
			want := tile.Bound().Center()
			assert.InDelta(t, want[0], center[0], 0.001)
			assert.InDelta(t, want[1], center[1], 0.001)
		})
	}
}

func TestMVTDecoder_LayerNotFound(t *testing.T) {
	tile := testTile()
	data := encodeTile(t, tile, "admin")

	features, err := NewMVTDecoder("water", entity.LayerTypeRivers).DecodeTile(data, tile)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestMVTDecoder_InvalidData(t *testing.T) {
	_, err := NewMVTDecoder("admin", entity.LayerTypeBoundaries).DecodeTile([]byte("not a tile"), testTile())
	require.Error(t, err)
}

type fakeTileServer struct {
	tiles map[string][]byte
	paths []string
}

func (f *fakeTileServer) Get(_ context.Context, path string) (int, []byte) {
	f.paths = append(f.paths, path)
	data, ok := f.tiles[path]
	if !ok {
		return http.StatusNotFound, nil
	}

	return http.StatusOK, data
}

func TestPMTilesSource_Read(t *testing.T) {
	tile := testTile()
	bound := tile.Bound()
	server := &fakeTileServer{tiles: map[string][]byte{
		fmt.Sprintf("/roads/%d/%d/%d.mvt", tile.Z, tile.X, tile.Y): encodeTile(t, tile, "transportation"),
	}}

	// Bounds slightly larger than one tile pull in its neighbours too.
	src, err := newPMTilesSource(server, "roads", entity.LayerTypeRoads, &config.ReferenceSourceConfig{
		Zoom:   10,
		Bounds: []float64{bound.Min[0] - 0.01, bound.Min[1] + 0.01, bound.Max[0] - 0.01, bound.Max[1] - 0.01},
	})
	require.NoError(t, err)
	assert.Len(t, src.tiles, 2)

	fc, err := src.Read(context.Background())
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.IsType(t, orb.LineString{}, fc.Features[0].Geometry)
	assert.Len(t, server.paths, 2)
}

func TestNewPMTilesSource_Validation(t *testing.T) {
	server := &fakeTileServer{}

	_, err := newPMTilesSource(server, "roads", entity.LayerTypeRoads, &config.ReferenceSourceConfig{})
	require.Error(t, err)

	_, err = newPMTilesSource(server, "roads", entity.LayerTypeRoads, &config.ReferenceSourceConfig{
		Zoom:   14,
		Bounds: []float64{-180, -85, 180, 85},
	})
	require.Error(t, err)
}

func TestSplitArchivePath(t *testing.T) {
	tests := []struct {
		source     string
		wantBucket string
		wantName   string
	}{
		{source: "file:///data/roads.pmtiles", wantBucket: "file:///data", wantName: "roads"},
		{source: "/data/roads.pmtiles", wantBucket: "file:///data", wantName: "roads"},
		{source: "https://cdn.example.com/tiles/roads.pmtiles", wantBucket: "https://cdn.example.com/tiles", wantName: "roads"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			bucket, name := splitArchivePath(tt.source)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestSplitBlobURL(t *testing.T) {
	tests := []struct {
		source     string
		wantBucket string
		wantKey    string
		wantErr    bool
	}{
		{source: "file:///srv/layers/boundaries.geojson", wantBucket: "file:///srv/layers", wantKey: "boundaries.geojson"},
		{source: "gs://terrimap-layers/2026/rivers.geojson", wantBucket: "gs://terrimap-layers", wantKey: "2026/rivers.geojson"},
		{source: "s3://layers/roads.geojson?region=eu-west-1", wantBucket: "s3://layers?region=eu-west-1", wantKey: "roads.geojson"},
		{source: "gs://bucket-only", wantErr: true},
		{source: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			bucket, key, err := splitBlobURL(tt.source)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func writeCollection(t *testing.T) string {
	t.Helper()

	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))
	data, err := fc.MarshalJSON()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "boundaries.geojson")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func TestReadGeoJSON(t *testing.T) {
	path := writeCollection(t)

	for _, source := range []string{path, "file://" + path} {
		fc, err := ReadGeoJSON(context.Background(), source)
		require.NoError(t, err)
		assert.Len(t, fc.Features, 1)
	}

	_, err := ReadGeoJSON(context.Background(), filepath.Join(filepath.Dir(path), "missing.geojson"))
	require.Error(t, err)
}

type failingSource struct{}

func (failingSource) Read(context.Context) (*geojson.FeatureCollection, error) {
	return nil, errors.New("archive unreachable")
}

func TestReferenceLayers_LocalSourceAndFallback(t *testing.T) {
	path := writeCollection(t)
	fallback := mockrepository.NewMockReferenceLayerRepository(t)

	remoteRivers := geojson.NewFeatureCollection()
	remoteRivers.Append(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))
	fallback.EXPECT().ReferenceLayer(mock.Anything, entity.LayerTypeRivers).Return(remoteRivers, nil).Once()
	fallback.EXPECT().ReferenceLayer(mock.Anything, entity.LayerTypeRoads).Return(geojson.NewFeatureCollection(), nil).Once()

	layers, err := NewReferenceLayers(slog.New(slog.DiscardHandler), &config.TilesConfig{
		Layers: map[string]*config.ReferenceSourceConfig{
			"boundaries": {Kind: KindGeoJSON, Source: path},
			"rivers":     {Kind: KindRemote},
		},
	}, fallback)
	require.NoError(t, err)
	layers.sources[entity.LayerTypeRoads] = failingSource{}

	boundaries, err := layers.ReferenceLayer(context.Background(), entity.LayerTypeBoundaries)
	require.NoError(t, err)
	assert.Len(t, boundaries.Features, 1)

	rivers, err := layers.ReferenceLayer(context.Background(), entity.LayerTypeRivers)
	require.NoError(t, err)
	assert.Same(t, remoteRivers, rivers)

	roads, err := layers.ReferenceLayer(context.Background(), entity.LayerTypeRoads)
	require.NoError(t, err)
	assert.Empty(t, roads.Features)

	_, err = layers.ReferenceLayer(context.Background(), entity.LayerTypeTerritories)
	assert.ErrorIs(t, err, domainerrors.ErrUnknownLayer)
}

func TestReferenceLayers_NoFallback(t *testing.T) {
	layers, err := NewReferenceLayers(slog.New(slog.DiscardHandler), nil, nil)
	require.NoError(t, err)

	fc, err := layers.ReferenceLayer(context.Background(), entity.LayerTypeRoads)
	require.NoError(t, err)
	assert.Empty(t, fc.Features)

	layers.sources[entity.LayerTypeRoads] = failingSource{}
	_, err = layers.ReferenceLayer(context.Background(), entity.LayerTypeRoads)
	require.Error(t, err)
}

func TestNewReferenceLayers_ConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		layers map[string]*config.ReferenceSourceConfig
	}{
		{name: "not a reference layer", layers: map[string]*config.ReferenceSourceConfig{"territories": {Kind: KindGeoJSON, Source: "x.geojson"}}},
		{name: "unknown kind", layers: map[string]*config.ReferenceSourceConfig{"roads": {Kind: "wms"}}},
		{name: "empty geojson source", layers: map[string]*config.ReferenceSourceConfig{"rivers": {Kind: KindGeoJSON}}},
		{name: "empty pmtiles source", layers: map[string]*config.ReferenceSourceConfig{"roads": {Kind: KindPMTiles}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReferenceLayers(slog.New(slog.DiscardHandler), &config.TilesConfig{Layers: tt.layers}, nil)
			require.Error(t, err)
		})
	}
}
