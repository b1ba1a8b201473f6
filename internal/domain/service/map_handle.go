// Package service declares the external capabilities the editing engine
// drives: the map surface, the drawing toolkit, the UI presenter and the
// async plumbing. Implementations live in infra and delivery.
package service

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Pixel is a screen position relative to the map container's top-left corner.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayerSpec describes one style layer bound to a source.
type LayerSpec struct {
	ID     string         `json:"id"`
	Source string         `json:"source"`
	Type   string         `json:"type"` // fill, line, circle
	Paint  map[string]any `json:"paint,omitempty"`
	Layout map[string]any `json:"layout,omitempty"`
}

// MapEventType enumerates map surface events.
type MapEventType string

const (
	// MapEventLoad fires once the map finished its first load.
	MapEventLoad MapEventType = "load"
	// MapEventStyleChanged fires after a basemap swap; every non-base source
	// and layer is gone when it arrives.
	MapEventStyleChanged MapEventType = "style"
	// MapEventClick is a primary click on the map canvas.
	MapEventClick MapEventType = "click"
	// MapEventContextMenu is a right click on the map canvas.
	MapEventContextMenu MapEventType = "contextmenu"
	// MapEventViewport fires after the camera moved or the container resized.
	MapEventViewport MapEventType = "viewport"
)

// MapEvent is a map surface event.
type MapEvent struct {
	Type MapEventType
	// Point is the clicked coordinate for click/contextmenu.
	Point orb.Point
	// FeatureIDs lists rendered toolkit features under the cursor.
	FeatureIDs []string
}

// Projector converts geographic coordinates to container pixels.
type Projector interface {
	Project(point orb.Point) (Pixel, error)
}

// MapHandle is the map surface the renderer adapter materializes layers on.
// It is not safe for concurrent use; callers hold exclusive access between
// event-loop turns.
type MapHandle interface {
	Projector

	// Loaded reports whether the map finished its first load.
	Loaded() bool

	HasSource(id string) bool
	AddSource(id string, data *geojson.FeatureCollection) error
	SetSourceData(id string, data *geojson.FeatureCollection) error

	HasLayer(id string) bool
	AddLayer(spec LayerSpec) error
	SetPaintProperty(layerID, name string, value any) error
	SetLayoutProperty(layerID, name string, value any) error

	FitBounds(bound orb.Bound) error

	// Subscribe registers a listener for map events.
	Subscribe(listener func(MapEvent)) Subscription
}
