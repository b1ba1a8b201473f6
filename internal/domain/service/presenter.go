package service

import (
	"terrimap/internal/domain/entity"

	"github.com/paulmach/orb"
)

// TerritoryDraft pre-populates the territory form after a polygon is drawn.
type TerritoryDraft struct {
	ScratchID string       `json:"scratchId"`
	Geometry  orb.Geometry `json:"-"`
}

// LocationDraft pre-populates the location form after a point is drawn.
type LocationDraft struct {
	ScratchID    string              `json:"scratchId"`
	Geometry     orb.Point           `json:"-"`
	LocationType entity.LocationType `json:"locationType"`
}

// EditPrompt is the save/cancel confirmation anchored near the edited feature.
type EditPrompt struct {
	FeatureID string `json:"featureId"`
	Anchor    Pixel  `json:"anchor"`
}

// EditorState is the UI-facing snapshot of the editing engine.
type EditorState struct {
	Tool             entity.ToolMode     `json:"tool"`
	LocationDrawType entity.LocationType `json:"locationDrawType"`
	SelectedIDs      []string            `json:"selectedIds"`
	EditingID        string              `json:"editingId,omitempty"`
	Saving           bool                `json:"saving"`
	Interactive      bool                `json:"interactive"`
}

// NoticeLevel is the severity of a toast notification.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Presenter is the UI surface owned by the excluded form/CRUD layer.
type Presenter interface {
	OpenTerritoryForm(draft TerritoryDraft)
	OpenLocationForm(draft LocationDraft)
	ShowEditPrompt(prompt EditPrompt)
	HideEditPrompt()
	SetCursor(cursor string)
	ShowProgress(value int, visible bool)
	Notify(level NoticeLevel, message string)
	PublishState(state EditorState)
	PublishLayers(layers []entity.Layer)
}
