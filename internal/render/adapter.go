// Package render materializes the layer stack as sources and style layers on
// the map, and rebuilds them after a basemap style swap wipes them.
package render

import (
	"log/slog"
	"slices"

	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"
	"terrimap/internal/errors"
)

// Adapter renders layers onto a map handle. Render is idempotent and is the
// only recovery path after a style change. Not safe for concurrent use.
type Adapter struct {
	logger    *slog.Logger
	mapHandle service.MapHandle
	last      []entity.Layer
}

// NewAdapter creates an adapter bound to mapHandle.
func NewAdapter(logger *slog.Logger, mapHandle service.MapHandle) *Adapter {
	return &Adapter{
		logger:    logger.With(slog.String("component", "render")),
		mapHandle: mapHandle,
	}
}

// Render brings the map in line with layers. Failures are logged per layer
// and never stop the remaining layers.
func (a *Adapter) Render(layers []entity.Layer) {
	a.last = slices.Clone(layers)

	if !a.mapHandle.Loaded() {
		a.logger.Debug("Map not loaded, render deferred")
		return
	}

	for _, layer := range layers {
		if err := a.renderLayer(layer); err != nil {
			a.logger.Error("Failed to render layer",
				slog.String("layer", layer.ID),
				slog.Any("error", err),
			)
		}
	}
}

// OnStyleChanged re-renders the last layer stack onto the fresh style.
func (a *Adapter) OnStyleChanged() {
	a.logger.Info("Map style changed, restoring layers", slog.Int("layers", len(a.last)))
	a.Render(a.last)
}

func (a *Adapter) renderLayer(layer entity.Layer) error {
	hasData := layer.Data != nil && len(layer.Data.Features) > 0

	if a.mapHandle.HasSource(layer.ID) {
		if err := a.mapHandle.SetSourceData(layer.ID, layer.Data); err != nil {
			return errors.Wrap(err, "set source data")
		}
	} else {
		if !hasData {
			return nil
		}
		if err := a.mapHandle.AddSource(layer.ID, layer.Data); err != nil {
			return errors.Wrap(err, "add source")
		}
	}

	var errs []error
	for _, style := range styleLayers(layer) {
		if err := a.renderStyleLayer(style, layer.Visible); err != nil {
			errs = append(errs, errors.Wrapf(err, "style layer %s", style.spec.ID))
		}
	}

	return errors.Join(errs...)
}

func (a *Adapter) renderStyleLayer(style styleLayer, visible bool) error {
	if !a.mapHandle.HasLayer(style.spec.ID) {
		spec := style.spec
		spec.Paint = make(map[string]any, len(style.spec.Paint)+len(style.paint))
		for key, value := range style.spec.Paint {
			spec.Paint[key] = value
		}
		for key, value := range style.paint {
			spec.Paint[key] = value
		}
		spec.Layout = map[string]any{"visibility": visibility(visible)}

		if err := a.mapHandle.AddLayer(spec); err != nil {
			return errors.Wrap(err, "add layer")
		}
	}

	keys := make([]string, 0, len(style.paint))
	for key := range style.paint {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := a.mapHandle.SetPaintProperty(style.spec.ID, key, style.paint[key]); err != nil {
			return errors.Wrapf(err, "paint %s", key)
		}
	}

	return errors.Wrap(
		a.mapHandle.SetLayoutProperty(style.spec.ID, "visibility", visibility(visible)),
		"set visibility",
	)
}
