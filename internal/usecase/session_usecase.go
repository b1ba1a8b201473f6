package usecase

import (
	"context"

	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"
	"terrimap/internal/feature"
)

// SessionHandles are the client capabilities a map session drives.
type SessionHandles struct {
	Map       service.MapHandle
	Toolkits  service.ToolkitFactory
	Presenter service.Presenter
}

// MapSession is one connected map editor. Commands are queued onto the
// session's event loop and return immediately; their outcome reaches the
// client through the presenter.
type MapSession interface {
	ID() string

	// Run processes events until ctx is done or Close is called.
	Run(ctx context.Context) error
	Close()

	// ToolkitReady reports that the client finished creating its drawing toolkit.
	ToolkitReady()

	SelectTool(mode entity.ToolMode)
	SetLocationDrawType(locationType entity.LocationType)
	SetLayerVisible(layerID string, visible bool)
	SetLayerOpacity(layerID string, opacity float64)

	Save()
	Cancel()

	SubmitTerritory(form feature.TerritoryForm)
	SubmitLocation(form feature.LocationForm)
	CancelForm(scratchID string)
}

// SessionUsecase opens map sessions.
type SessionUsecase interface {
	Open(handles SessionHandles) MapSession
}
