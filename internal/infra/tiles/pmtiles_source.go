package tiles

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"terrimap/config"
	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
	"github.com/protomaps/go-pmtiles/pmtiles"
)

const (
	defaultZoom      = 8
	defaultMVTLayer  = "transportation"
	maxTilesPerLayer = 256
)

// tileGetter is the part of the PMTiles server used here.
type tileGetter interface {
	Get(ctx context.Context, path string) (int, []byte)
}

// serverAdapter narrows *pmtiles.Server to tileGetter.
type serverAdapter struct {
	server *pmtiles.Server
}

func (a serverAdapter) Get(ctx context.Context, path string) (int, []byte) {
	status, _, data := a.server.Get(ctx, path)

	return status, data
}

// pmtilesSource reads every tile covering a fixed bound and decodes it.
type pmtilesSource struct {
	server  tileGetter
	tileset string
	decoder *MVTDecoder
	tiles   []maptile.Tile
}

func newPMTilesSource(server tileGetter, tileset string, layerType entity.LayerType, cfg *config.ReferenceSourceConfig) (*pmtilesSource, error) {
	if len(cfg.Bounds) != 4 {
		return nil, errors.Errorf("pmtiles source for %s needs bounds [minLon, minLat, maxLon, maxLat]", layerType)
	}

	zoom := cfg.Zoom
	if zoom <= 0 {
		zoom = defaultZoom
	}
	layerName := cfg.Layer
	if layerName == "" {
		layerName = defaultMVTLayer
	}

	bound := orb.Bound{
		Min: orb.Point{cfg.Bounds[0], cfg.Bounds[1]},
		Max: orb.Point{cfg.Bounds[2], cfg.Bounds[3]},
	}
	tiles := tilesForBound(bound, maptile.Zoom(zoom))
	if len(tiles) > maxTilesPerLayer {
		return nil, errors.Errorf("pmtiles source for %s covers %d tiles at zoom %d (max %d)", layerType, len(tiles), zoom, maxTilesPerLayer)
	}

	return &pmtilesSource{
		server:  server,
		tileset: tileset,
		decoder: NewMVTDecoder(layerName, layerType),
		tiles:   tiles,
	}, nil
}

func (s *pmtilesSource) Read(ctx context.Context) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, tile := range s.tiles {
		data, err := s.fetchTile(ctx, tile)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}

		features, err := s.decoder.DecodeTile(data, tile)
		if err != nil {
			return nil, errors.Wrapf(err, "decode tile %d/%d/%d", tile.Z, tile.X, tile.Y)
		}
		fc.Features = append(fc.Features, features...)
	}

	return fc, nil
}

// fetchTile returns nil data for tiles missing from the archive.
func (s *pmtilesSource) fetchTile(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	// Format: /{tileset}/{z}/{x}/{y}.mvt
	tilePath := fmt.Sprintf("/%s/%d/%d/%d.mvt", s.tileset, tile.Z, tile.X, tile.Y)

	statusCode, data := s.server.Get(ctx, tilePath)
	switch statusCode {
	case http.StatusOK:
		return data, nil
	case http.StatusNotFound, http.StatusNoContent:
		return nil, nil
	default:
		return nil, errors.Errorf("tile %s: unexpected status code %d", tilePath, statusCode)
	}
}

// tilesForBound returns all tiles that cover the bound.
func tilesForBound(bound orb.Bound, zoom maptile.Zoom) []maptile.Tile {
	minTile := maptile.At(orb.Point{bound.Min.Lon(), bound.Max.Lat()}, zoom)
	maxTile := maptile.At(orb.Point{bound.Max.Lon(), bound.Min.Lat()}, zoom)

	tiles := make([]maptile.Tile, 0)
	for x := minTile.X; x <= maxTile.X; x++ {
		for y := minTile.Y; y <= maxTile.Y; y++ {
			tiles = append(tiles, maptile.Tile{X: x, Y: y, Z: zoom})
		}
	}

	return tiles
}

// splitArchivePath extracts the bucket and tileset name from an archive URL.
// Examples:
//   - "file:///data/roads.pmtiles" -> ("file:///data", "roads")
//   - "/data/roads.pmtiles" -> ("file:///data", "roads")
//   - "https://cdn.example.com/tiles/roads.pmtiles" -> ("https://cdn.example.com/tiles", "roads")
func splitArchivePath(source string) (bucketPath, tilesetName string) {
	if path, ok := strings.CutPrefix(source, "file://"); ok {
		return "file://" + filepath.Dir(path), strings.TrimSuffix(filepath.Base(path), ".pmtiles")
	}

	if strings.Contains(source, "://") {
		lastSlash := strings.LastIndex(source, "/")

		return source[:lastSlash], strings.TrimSuffix(source[lastSlash+1:], ".pmtiles")
	}

	return "file://" + filepath.Dir(source), strings.TrimSuffix(filepath.Base(source), ".pmtiles")
}
