// Package bridge connects a browser map client to a map session over a
// websocket. The client forwards map and drawing-toolkit events and runs the
// commands the session sends back; the proxies here stand in for the map,
// the toolkit and the UI on the server side.
package bridge

import (
	"encoding/json"
	"time"

	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"
	"terrimap/internal/prompt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Inbound message types, client to server.
const (
	TypeMapLoad        = "map.load"
	TypeMapStyle       = "map.style"
	TypeMapViewport    = "map.viewport"
	TypeMapClick       = "map.click"
	TypeMapContextMenu = "map.contextmenu"
	TypeDrawReady      = "draw.ready"
	TypeDrawCreate     = "draw.create"
	TypeDrawUpdate     = "draw.update"
	TypeDrawDelete     = "draw.delete"
	TypeDrawSelection  = "draw.selectionchange"
	TypeUITool         = "ui.tool"
	TypeUILocationType = "ui.locationType"
	TypeUILayer        = "ui.layer"
	TypeUISave         = "ui.save"
	TypeUICancel       = "ui.cancel"
	TypeFormTerritory  = "form.territory"
	TypeFormLocation   = "form.location"
	TypeFormCancel     = "form.cancel"
	TypePing           = "ping"
)

var inboundTypes = map[string]struct{}{
	TypeMapLoad: {}, TypeMapStyle: {}, TypeMapViewport: {}, TypeMapClick: {}, TypeMapContextMenu: {},
	TypeDrawReady: {}, TypeDrawCreate: {}, TypeDrawUpdate: {}, TypeDrawDelete: {}, TypeDrawSelection: {},
	TypeUITool: {}, TypeUILocationType: {}, TypeUILayer: {}, TypeUISave: {}, TypeUICancel: {},
	TypeFormTerritory: {}, TypeFormLocation: {}, TypeFormCancel: {}, TypePing: {},
}

// inboundLabel keeps client-chosen type strings out of metric labels.
func inboundLabel(msgType string) string {
	if _, ok := inboundTypes[msgType]; ok {
		return msgType
	}

	return "unknown"
}

// Outbound message types, server to client.
const (
	TypeSessionReady      = "session.ready"
	TypeError             = "error"
	TypePong              = "pong"
	TypeMapAddSource      = "map.addSource"
	TypeMapSetSourceData  = "map.setSourceData"
	TypeMapAddLayer       = "map.addLayer"
	TypeMapSetPaint       = "map.setPaint"
	TypeMapSetVisibility  = "map.setVisibility"
	TypeMapSetLayout      = "map.setLayout"
	TypeMapFitBounds      = "map.fitBounds"
	TypeDrawChangeMode    = "draw.changeMode"
	TypeDrawAdd           = "draw.add"
	TypeDrawRemove        = "draw.delete"
	TypeDrawDeleteAll     = "draw.deleteAll"
	TypeDrawSetProperty   = "draw.setProperty"
	TypeDrawSetPointColor = "draw.setPointColor"
	TypeUICursor          = "ui.cursor"
	TypeUIForm            = "ui.form"
	TypeUIPrompt          = "ui.prompt"
	TypeUIProgress        = "ui.progress"
	TypeUIToast           = "ui.toast"
	TypeUIState           = "ui.state"
	TypeUILayers          = "ui.layers"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type      string          `json:"type"`
	Seq       uint64          `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"ts"`
}

// Inbound payloads.

type viewportPayload struct {
	Viewport *prompt.Viewport `json:"viewport,omitempty"`
}

type pointerPayload struct {
	LngLat     orb.Point `json:"lngLat"`
	FeatureIDs []string  `json:"featureIds"`
}

type featuresPayload struct {
	Features []*geojson.Feature `json:"features"`
	Action   string             `json:"action,omitempty"`
}

type selectionPayload struct {
	Features []*geojson.Feature `json:"features"`
	IDs      []string           `json:"ids"`
}

type toolPayload struct {
	Tool entity.ToolMode `json:"tool" validate:"required"`
}

type locationTypePayload struct {
	LocationType entity.LocationType `json:"locationType" validate:"required,oneof=current potential"`
}

type layerPayload struct {
	LayerID string   `json:"layerId" validate:"required"`
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" validate:"omitempty,gte=0,lte=1"`
}

type formCancelPayload struct {
	ScratchID string `json:"scratchId" validate:"required"`
}

// Outbound payloads.

type sessionReadyPayload struct {
	SessionID string `json:"sessionId"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type sourcePayload struct {
	ID   string                     `json:"id"`
	Data *geojson.FeatureCollection `json:"data"`
}

type propertyPayload struct {
	LayerID string `json:"layerId"`
	Name    string `json:"name"`
	Value   any    `json:"value"`
}

type visibilityPayload struct {
	LayerID    string `json:"layerId"`
	Visibility any    `json:"visibility"`
}

type boundsPayload struct {
	Bounds [4]float64 `json:"bounds"`
}

type modePayload struct {
	Mode      string `json:"mode"`
	FeatureID string `json:"featureId,omitempty"`
}

type featurePayload struct {
	Feature *geojson.Feature `json:"feature"`
}

type idsPayload struct {
	IDs []string `json:"ids"`
}

type featurePropertyPayload struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

type colorPayload struct {
	Color string `json:"color"`
}

type cursorPayload struct {
	Cursor string `json:"cursor"`
}

type formPayload struct {
	Kind         entity.EntityKind   `json:"kind"`
	ScratchID    string              `json:"scratchId"`
	Geometry     *geojson.Geometry   `json:"geometry"`
	LocationType entity.LocationType `json:"locationType,omitempty"`
}

type promptPayload struct {
	Visible   bool          `json:"visible"`
	FeatureID string        `json:"featureId,omitempty"`
	Anchor    service.Pixel `json:"anchor"`
}

type progressPayload struct {
	Value   int  `json:"value"`
	Visible bool `json:"visible"`
}

type toastPayload struct {
	Level   service.NoticeLevel `json:"level"`
	Message string              `json:"message"`
}
