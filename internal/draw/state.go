// Package draw owns the drawing toolkit's mode and selection and keeps the
// toolkit in step with them.
package draw

import (
	"slices"

	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"

	"github.com/paulmach/orb/geojson"
)

// State is the editor state. Exactly one variant is active, so the tool mode
// and an open edit can never disagree.
type State interface {
	// Tool is the tool mode the toolkit runs in for this state.
	Tool() entity.ToolMode
	isState()
}

// Idle is panning with nothing selected.
type Idle struct{}

// Drawing is an active draw tool.
type Drawing struct {
	Mode entity.ToolMode
	// LocationDrawType is the collection new points go to.
	LocationDrawType entity.LocationType
}

// Selecting is simple or direct selection over toolkit feature ids.
type Selecting struct {
	Mode entity.ToolMode
	IDs  []string
}

// Editing holds the one open geometry edit.
type Editing struct {
	Session *EditingSession
}

func (Idle) Tool() entity.ToolMode        { return entity.ToolModeNone }
func (s Drawing) Tool() entity.ToolMode   { return s.Mode }
func (s Selecting) Tool() entity.ToolMode { return s.Mode }
func (Editing) Tool() entity.ToolMode     { return entity.ToolModeDirectSelect }

func (Idle) isState()      {}
func (Drawing) isState()   {}
func (Selecting) isState() {}
func (Editing) isState()   {}

// EditingSession is an unsaved geometry edit awaiting Save or Cancel.
type EditingSession struct {
	// FeatureID is the persisted id, equal to the toolkit feature id.
	FeatureID    string
	Kind         entity.EntityKind
	LocationType entity.LocationType
	// Original is the persisted feature as loaded into the toolkit.
	Original *geojson.Feature
	// Edited is the latest toolkit copy.
	Edited *geojson.Feature
	// Pending is set while the save mutation is in flight.
	Pending bool
	// Anchor is where the confirmation prompt sits while Prompted.
	Anchor   service.Pixel
	Prompted bool
}

func cloneIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	return slices.Clone(ids)
}
