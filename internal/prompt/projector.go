// Package prompt positions the save/cancel confirmation next to the feature
// under edit.
package prompt

import (
	"math"

	"terrimap/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
)

// TileSize is the MapLibre/Mapbox GL world tile size in pixels.
const TileSize = 512

// maxLatitude is the Web Mercator clipping latitude.
const maxLatitude = 85.051128

// Viewport is the camera of the map client as last reported.
type Viewport struct {
	Center orb.Point `json:"center"`
	Zoom   float64   `json:"zoom"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
}

// WebMercatorProjector projects like MapLibre GL does for an unrotated,
// unpitched camera.
type WebMercatorProjector struct {
	Viewport Viewport
}

var _ service.Projector = (*WebMercatorProjector)(nil)

// Project implements service.Projector.
func (p *WebMercatorProjector) Project(point orb.Point) (service.Pixel, error) {
	world := TileSize * math.Exp2(p.Viewport.Zoom)

	x, y := fraction(point)
	cx, cy := fraction(p.Viewport.Center)

	return service.Pixel{
		X: (x-cx)*world + p.Viewport.Width/2,
		Y: (y-cy)*world + p.Viewport.Height/2,
	}, nil
}

// fraction returns the point's position in the zoom 0 world as a 0..1 pair.
func fraction(point orb.Point) (float64, float64) {
	clamped := orb.Point{point.Lon(), math.Max(-maxLatitude, math.Min(maxLatitude, point.Lat()))}
	f := maptile.Fraction(clamped, 0)

	return f.X(), f.Y()
}
