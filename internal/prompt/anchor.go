package prompt

import (
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/service"
	"terrimap/internal/errors"

	"github.com/paulmach/orb"
)

// Anchor returns the pixel position of the centre of geometry's bounding box.
func Anchor(projector service.Projector, geometry orb.Geometry) (service.Pixel, error) {
	if geometry == nil {
		return service.Pixel{}, domainerrors.ErrUnsupportedGeometry.WithDetails("geometry is empty")
	}

	pixel, err := projector.Project(geometry.Bound().Center())
	if err != nil {
		return service.Pixel{}, errors.Wrap(err, "project prompt anchor")
	}

	return pixel, nil
}
