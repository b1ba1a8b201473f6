package feature

import (
	"terrimap/internal/layer"
)

// Readiness is everything the bulk load waits for.
type Readiness struct {
	ToolkitReady       bool
	MapLoaded          bool
	Territories        layer.Source
	CurrentLocations   layer.Source
	PotentialLocations layer.Source
}

// Ready reports whether the toolkit can be loaded. A failed source loads
// whatever it last held.
func (r Readiness) Ready() bool {
	return r.ToolkitReady && r.MapLoaded &&
		r.Territories.Settled() && r.CurrentLocations.Settled() && r.PotentialLocations.Settled()
}

// loadKey identifies one loadable data snapshot.
type loadKey struct {
	territories uint64
	current     uint64
	potential   uint64
}

func (r Readiness) key() loadKey {
	return loadKey{
		territories: r.Territories.Revision,
		current:     r.CurrentLocations.Revision,
		potential:   r.PotentialLocations.Revision,
	}
}
