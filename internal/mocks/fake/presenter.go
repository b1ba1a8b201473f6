package fake

import (
	"terrimap/internal/domain/entity"
	"terrimap/internal/domain/service"
)

// Notice is one recorded toast.
type Notice struct {
	Level   service.NoticeLevel
	Message string
}

// Presenter records everything shown to the user.
type Presenter struct {
	TerritoryForms []service.TerritoryDraft
	LocationForms  []service.LocationDraft
	Prompts        []service.EditPrompt
	PromptVisible  bool
	Cursors        []string
	Progress       []int
	Notices        []Notice
	States         []service.EditorState
	LayerSets      [][]entity.Layer
}

var _ service.Presenter = (*Presenter)(nil)

func (p *Presenter) OpenTerritoryForm(draft service.TerritoryDraft) {
	p.TerritoryForms = append(p.TerritoryForms, draft)
}

func (p *Presenter) OpenLocationForm(draft service.LocationDraft) {
	p.LocationForms = append(p.LocationForms, draft)
}

func (p *Presenter) ShowEditPrompt(prompt service.EditPrompt) {
	p.Prompts = append(p.Prompts, prompt)
	p.PromptVisible = true
}

func (p *Presenter) HideEditPrompt() {
	p.PromptVisible = false
}

func (p *Presenter) SetCursor(cursor string) {
	p.Cursors = append(p.Cursors, cursor)
}

func (p *Presenter) ShowProgress(value int, visible bool) {
	if !visible {
		value = 0
	}
	p.Progress = append(p.Progress, value)
}

func (p *Presenter) Notify(level service.NoticeLevel, message string) {
	p.Notices = append(p.Notices, Notice{Level: level, Message: message})
}

func (p *Presenter) PublishState(state service.EditorState) {
	p.States = append(p.States, state)
}

func (p *Presenter) PublishLayers(layers []entity.Layer) {
	p.LayerSets = append(p.LayerSets, layers)
}

// LastNotice returns the most recent toast.
func (p *Presenter) LastNotice() (Notice, bool) {
	if len(p.Notices) == 0 {
		return Notice{}, false
	}

	return p.Notices[len(p.Notices)-1], true
}
