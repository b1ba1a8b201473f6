package bridge

import (
	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"

	"github.com/paulmach/orb/geojson"
)

// PresenterProxy forwards presenter calls to the client as ui.* commands.
type PresenterProxy struct {
	out sender
}

var _ service.Presenter = (*PresenterProxy)(nil)

// NewPresenterProxy creates a presenter writing to out.
func NewPresenterProxy(out sender) *PresenterProxy {
	return &PresenterProxy{out: out}
}

func (p *PresenterProxy) OpenTerritoryForm(draft service.TerritoryDraft) {
	p.out.Send(TypeUIForm, formPayload{
		Kind:      entity.EntityKindTerritory,
		ScratchID: draft.ScratchID,
		Geometry:  geojson.NewGeometry(draft.Geometry),
	})
}

func (p *PresenterProxy) OpenLocationForm(draft service.LocationDraft) {
	p.out.Send(TypeUIForm, formPayload{
		Kind:         entity.EntityKindLocation,
		ScratchID:    draft.ScratchID,
		Geometry:     geojson.NewGeometry(draft.Geometry),
		LocationType: draft.LocationType,
	})
}

func (p *PresenterProxy) ShowEditPrompt(prompt service.EditPrompt) {
	p.out.Send(TypeUIPrompt, promptPayload{Visible: true, FeatureID: prompt.FeatureID, Anchor: prompt.Anchor})
}

func (p *PresenterProxy) HideEditPrompt() {
	p.out.Send(TypeUIPrompt, promptPayload{})
}

func (p *PresenterProxy) SetCursor(cursor string) {
	p.out.Send(TypeUICursor, cursorPayload{Cursor: cursor})
}

func (p *PresenterProxy) ShowProgress(value int, visible bool) {
	p.out.Send(TypeUIProgress, progressPayload{Value: value, Visible: visible})
}

func (p *PresenterProxy) Notify(level service.NoticeLevel, message string) {
	p.out.Send(TypeUIToast, toastPayload{Level: level, Message: message})
}

func (p *PresenterProxy) PublishState(state service.EditorState) {
	p.out.Send(TypeUIState, state)
}

func (p *PresenterProxy) PublishLayers(layers []entity.Layer) {
	p.out.Send(TypeUILayers, layers)
}
