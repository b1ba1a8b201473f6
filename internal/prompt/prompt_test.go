package prompt

import (
	"testing"

	"terrimap/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebMercatorProjector_Center(t *testing.T) {
	p := &WebMercatorProjector{Viewport: Viewport{Center: orb.Point{-98.5, 39.8}, Zoom: 4, Width: 800, Height: 600}}

	px, err := p.Project(orb.Point{-98.5, 39.8})
	require.NoError(t, err)
	assert.InDelta(t, 400, px.X, 1e-6)
	assert.InDelta(t, 300, px.Y, 1e-6)
}

func TestWebMercatorProjector_WorldScale(t *testing.T) {
	p := &WebMercatorProjector{Viewport: Viewport{Center: orb.Point{0, 0}, Zoom: 0, Width: 512, Height: 512}}

	east, err := p.Project(orb.Point{90, 0})
	require.NoError(t, err)
	assert.InDelta(t, 384, east.X, 1e-6)
	assert.InDelta(t, 256, east.Y, 1e-6)

	north, err := p.Project(orb.Point{0, 45})
	require.NoError(t, err)
	assert.Less(t, north.Y, 256.0)

	pole, err := p.Project(orb.Point{0, 90})
	require.NoError(t, err)
	assert.InDelta(t, 0, pole.Y, 1e-3)
}

type recordingProjector struct {
	got orb.Point
}

func (r *recordingProjector) Project(point orb.Point) (service.Pixel, error) {
	r.got = point

	return service.Pixel{X: point.Lon(), Y: point.Lat()}, nil
}

func TestAnchor_BoundingBoxCentre(t *testing.T) {
	proj := &recordingProjector{}
	polygon := orb.Polygon{{{0, 0}, {4, 0}, {4, 2}, {1, 3}, {0, 0}}}

	px, err := Anchor(proj, polygon)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{2, 1.5}, proj.got)
	assert.Equal(t, service.Pixel{X: 2, Y: 1.5}, px)
}

func TestAnchor_NilGeometry(t *testing.T) {
	_, err := Anchor(&recordingProjector{}, nil)
	assert.Error(t, err)
}
