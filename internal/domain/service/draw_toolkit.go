package service

import (
	"github.com/paulmach/orb/geojson"
)

// DrawEventType enumerates drawing toolkit events.
type DrawEventType string

const (
	DrawEventCreate          DrawEventType = "create"
	DrawEventUpdate          DrawEventType = "update"
	DrawEventDelete          DrawEventType = "delete"
	DrawEventSelectionChange DrawEventType = "selectionchange"
)

// DrawEvent is a drawing toolkit event.
type DrawEvent struct {
	Type     DrawEventType
	Features []*geojson.Feature
	// Action is the update kind reported by the toolkit ("move", "change_coordinates").
	Action string
}

// ModeOptions parameterizes a mode change.
type ModeOptions struct {
	// FeatureID targets direct_select at one feature.
	FeatureID string `json:"featureId,omitempty"`
}

// DrawToolkit is the vector drawing toolkit attached to the map. Its feature
// set is the single shared mutable resource of a session; only the state
// machine and the synchronizer mutate it.
type DrawToolkit interface {
	ChangeMode(mode string, opts ModeOptions) error

	// Add inserts or replaces a feature and returns the toolkit ids assigned.
	Add(feature *geojson.Feature) ([]string, error)
	Get(id string) *geojson.Feature
	GetAll() *geojson.FeatureCollection
	GetSelectedIDs() []string
	Delete(ids ...string) error
	DeleteAll() error

	SetFeatureProperty(id, key string, value any) error
	// SetPointColor changes the paint colour of points drawn from now on.
	SetPointColor(color string) error

	// Subscribe registers a listener for toolkit events.
	Subscribe(listener func(DrawEvent)) Subscription
}

// ToolkitFactory attaches a drawing toolkit to a loaded map.
type ToolkitFactory interface {
	Attach(mapHandle MapHandle) (DrawToolkit, error)
}
