// Package tiles serves the read-only reference layers (boundaries, rivers,
// roads) from PMTiles archives or static GeoJSON blobs, falling back to the
// remote data service for layers configured as remote.
package tiles

import (
	"context"
	"io"
	"log"
	"log/slog"
	"strings"

	"terrimap/config"
	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/infra/metrics"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/protomaps/go-pmtiles/pmtiles"
)

const (
	KindRemote  = "remote"
	KindPMTiles = "pmtiles"
	KindGeoJSON = "geojson"

	defaultCacheSize = 64
)

type source interface {
	Read(ctx context.Context) (*geojson.FeatureCollection, error)
}

// ReferenceLayers picks a source per reference layer.
type ReferenceLayers struct {
	logger   *slog.Logger
	sources  map[entity.LayerType]source
	fallback repository.ReferenceLayerRepository
}

var _ repository.ReferenceLayerRepository = (*ReferenceLayers)(nil)

// NewReferenceLayers builds the configured sources. fallback serves every
// layer without a local source and every local read that fails.
func NewReferenceLayers(logger *slog.Logger, cfg *config.TilesConfig, fallback repository.ReferenceLayerRepository) (*ReferenceLayers, error) {
	r := &ReferenceLayers{
		logger:   logger.With(slog.String("component", "tiles")),
		sources:  make(map[entity.LayerType]source),
		fallback: fallback,
	}
	if cfg == nil {
		return r, nil
	}

	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	servers := make(map[string]tileGetter)

	for name, layerCfg := range cfg.Layers {
		layerType := entity.LayerType(name)
		if !isReferenceLayer(layerType) {
			return nil, errors.Errorf("tiles: %q is not a reference layer", name)
		}
		if layerCfg == nil {
			continue
		}

		switch strings.ToLower(layerCfg.Kind) {
		case "", KindRemote:
			continue
		case KindGeoJSON:
			if layerCfg.Source == "" {
				return nil, errors.Errorf("tiles: geojson source for %s is empty", name)
			}
			r.sources[layerType] = &blobSource{source: layerCfg.Source}
		case KindPMTiles:
			if layerCfg.Source == "" {
				return nil, errors.Errorf("tiles: pmtiles source for %s is empty", name)
			}
			bucketPath, tileset := splitArchivePath(layerCfg.Source)

			server, ok := servers[bucketPath]
			if !ok {
				// pmtiles requires a *log.Logger
				pmServer, err := pmtiles.NewServer(bucketPath, "", log.New(io.Discard, "", 0), cacheSize, "")
				if err != nil {
					return nil, errors.Wrap(err, "failed to create PMTiles server")
				}
				pmServer.Start()
				server = serverAdapter{server: pmServer}
				servers[bucketPath] = server
			}

			src, err := newPMTilesSource(server, tileset, layerType, layerCfg)
			if err != nil {
				return nil, err
			}
			r.sources[layerType] = src
		default:
			return nil, errors.Errorf("tiles: unknown source kind %q for %s", layerCfg.Kind, name)
		}

		r.logger.Info("Reference layer source configured",
			slog.String("layer", name),
			slog.String("kind", layerCfg.Kind),
			slog.String("source", layerCfg.Source),
		)
	}

	return r, nil
}

// ReferenceLayer reads the layer from its local source, or from the
// fallback when none is configured or the local read fails.
func (r *ReferenceLayers) ReferenceLayer(ctx context.Context, layerType entity.LayerType) (*geojson.FeatureCollection, error) {
	if !isReferenceLayer(layerType) {
		return nil, errors.WithStack(domainerrors.ErrUnknownLayer.WithDetails(layerType.String()))
	}

	if src, ok := r.sources[layerType]; ok {
		fc, err := src.Read(ctx)
		if err == nil {
			metrics.TileReadsTotal.WithLabelValues(layerType.String(), "ok").Inc()

			return fc, nil
		}
		metrics.TileReadsTotal.WithLabelValues(layerType.String(), "error").Inc()
		r.logger.Warn("Local reference layer read failed, falling back",
			slog.String("layer", layerType.String()),
			slog.Any("error", err),
		)
		if r.fallback == nil {
			return nil, err
		}
	}

	if r.fallback == nil {
		return geojson.NewFeatureCollection(), nil
	}

	return r.fallback.ReferenceLayer(ctx, layerType)
}

func isReferenceLayer(layerType entity.LayerType) bool {
	switch layerType {
	case entity.LayerTypeBoundaries, entity.LayerTypeRivers, entity.LayerTypeRoads:
		return true
	default:
		return false
	}
}
