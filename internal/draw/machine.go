package draw

import (
	"log/slog"
	"time"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/service"
	"terrimap/internal/errors"

	"github.com/paulmach/orb/geojson"
)

// AttachRetryDelay is the wait before the single attach retry.
const AttachRetryDelay = time.Second

// Cursors shown by the map client per tool.
const (
	CursorDefault           = ""
	CursorPolygon           = "crosshair"
	CursorCurrentLocation   = "crosshair"
	CursorPotentialLocation = "cell"
)

// Machine is the drawing mode state machine. It is not safe for concurrent
// use; every method runs on the owning session's event loop.
type Machine struct {
	logger    *slog.Logger
	scheduler service.Scheduler
	presenter service.Presenter

	toolkit          service.DrawToolkit
	state            State
	selected         []string
	locationDrawType entity.LocationType

	retry        service.Timer
	attachFailed bool

	onTrash func(deleted []*geojson.Feature)
}

// NewMachine creates a detached machine in the Idle state.
func NewMachine(logger *slog.Logger, scheduler service.Scheduler, presenter service.Presenter) *Machine {
	return &Machine{
		logger:           logger.With(slog.String("component", "draw")),
		scheduler:        scheduler,
		presenter:        presenter,
		state:            Idle{},
		locationDrawType: entity.LocationTypeCurrent,
	}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Tool returns the active tool mode.
func (m *Machine) Tool() entity.ToolMode {
	return m.state.Tool()
}

// Ready reports whether a toolkit is attached.
func (m *Machine) Ready() bool {
	return m.toolkit != nil
}

// AttachFailed reports that both attach attempts failed; drawing stays off.
func (m *Machine) AttachFailed() bool {
	return m.attachFailed
}

// Toolkit returns the attached toolkit or nil.
func (m *Machine) Toolkit() service.DrawToolkit {
	return m.toolkit
}

// SelectedIDs returns the host copy of the toolkit selection.
func (m *Machine) SelectedIDs() []string {
	return cloneIDs(m.selected)
}

// LocationDrawType returns the collection new points are created in.
func (m *Machine) LocationDrawType() entity.LocationType {
	return m.locationDrawType
}

// Editing returns the open edit, if any.
func (m *Machine) Editing() (*EditingSession, bool) {
	editing, ok := m.state.(Editing)
	if !ok {
		return nil, false
	}

	return editing.Session, true
}

// Attach binds a toolkit and pushes the current mode to it.
func (m *Machine) Attach(toolkit service.DrawToolkit) {
	if m.retry != nil {
		m.retry.Stop()
		m.retry = nil
	}
	m.toolkit = toolkit
	m.attachFailed = false

	if err := m.applyMode(m.state.Tool(), service.ModeOptions{}); err != nil {
		m.logger.Warn("Failed to apply mode after attach", slog.Any("error", err))
	}
}

// OnTrash registers the receiver of features removed by the trash tool. The
// toolkit reports no delete event for them.
func (m *Machine) OnTrash(fn func(deleted []*geojson.Feature)) {
	m.onTrash = fn
}

// Detach drops the toolkit and returns to Idle.
func (m *Machine) Detach() {
	if m.retry != nil {
		m.retry.Stop()
		m.retry = nil
	}
	m.toolkit = nil
	m.state = Idle{}
	m.selected = nil
}

// AttachWithRetry attaches through factory once the map is loaded. A failed
// attempt is retried once after AttachRetryDelay; if that fails too the
// machine stays detached and drawing remains unavailable. onAttached runs
// after a successful attach.
func (m *Machine) AttachWithRetry(factory service.ToolkitFactory, mapHandle service.MapHandle, onAttached func()) {
	if m.Ready() {
		return
	}

	attempt := func() error {
		toolkit, err := factory.Attach(mapHandle)
		if err != nil {
			return err
		}
		m.Attach(toolkit)
		if onAttached != nil {
			onAttached()
		}

		return nil
	}

	if m.retry != nil {
		m.retry.Stop()
		m.retry = nil
	}

	err := attempt()
	if err == nil {
		return
	}
	m.logger.Warn("Drawing toolkit attach failed, retrying once",
		slog.Any("error", err),
		slog.Duration("delay", AttachRetryDelay),
	)

	m.retry = m.scheduler.AfterFunc(AttachRetryDelay, func() {
		m.retry = nil
		if m.Ready() {
			return
		}
		if err := attempt(); err != nil {
			m.attachFailed = true
			m.logger.Error("Drawing toolkit unavailable, map stays read-only", slog.Any("error", err))
			m.presenter.Notify(service.NoticeError, "Drawing tools failed to load; the map is view-only.")
		}
	})
}

// SelectTool switches to the requested tool. Requests before the toolkit is
// attached are dropped, not queued.
func (m *Machine) SelectTool(mode entity.ToolMode) error {
	if !mode.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown tool " + mode.String())
	}
	if !m.Ready() {
		m.logger.Warn("Tool request dropped, toolkit not ready", slog.String("tool", mode.String()))

		return domainerrors.ErrToolkitNotReady
	}
	if session, ok := m.Editing(); ok {
		return domainerrors.ErrEditInProgress.WithDetails(session.FeatureID)
	}

	switch mode {
	case entity.ToolModeTrash:
		return m.trash()
	case entity.ToolModeNone:
		return m.transition(Idle{}, service.ModeOptions{})
	case entity.ToolModeSimpleSelect, entity.ToolModeDirectSelect:
		return m.transition(Selecting{Mode: mode, IDs: cloneIDs(m.selected)}, service.ModeOptions{})
	default:
		return m.transition(Drawing{Mode: mode, LocationDrawType: m.locationDrawType}, service.ModeOptions{})
	}
}

// SetLocationDrawType picks the collection for new points. While drawing
// points the cursor and the toolkit's point colour follow immediately.
func (m *Machine) SetLocationDrawType(locationType entity.LocationType) error {
	if !locationType.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("unknown location type " + locationType.String())
	}
	m.locationDrawType = locationType

	drawing, ok := m.state.(Drawing)
	if !ok || drawing.Mode != entity.ToolModeDrawPoint {
		return nil
	}
	drawing.LocationDrawType = locationType
	m.state = drawing
	m.presenter.SetCursor(cursorFor(drawing))

	if m.toolkit == nil {
		return nil
	}

	return errors.Wrap(m.toolkit.SetPointColor(locationType.PointColor()), "set point color")
}

// OnSelectionChange mirrors the toolkit's selection into every feature's
// "selected" property and into the host selection. A first selection in
// simple_select switches to direct_select on the first id.
func (m *Machine) OnSelectionChange(ids []string) error {
	m.selected = cloneIDs(ids)

	var errs []error
	if m.toolkit != nil {
		selected := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			selected[id] = struct{}{}
		}

		for _, feature := range m.toolkit.GetAll().Features {
			id, ok := entity.ToolkitID(feature)
			if !ok {
				continue
			}
			_, isSelected := selected[id]
			if err := m.toolkit.SetFeatureProperty(id, entity.PropSelected, isSelected); err != nil {
				errs = append(errs, errors.Wrapf(err, "stamp selection on %s", id))
			}
		}
	}

	if selecting, ok := m.state.(Selecting); ok {
		switch {
		case selecting.Mode == entity.ToolModeSimpleSelect && len(ids) > 0:
			if err := m.transition(
				Selecting{Mode: entity.ToolModeDirectSelect, IDs: cloneIDs(ids)},
				service.ModeOptions{FeatureID: ids[0]},
			); err != nil {
				errs = append(errs, err)
			}
		case selecting.Mode == entity.ToolModeDirectSelect && len(ids) == 0:
			// the toolkit leaves direct_select by itself when the selection clears
			m.state = Selecting{Mode: entity.ToolModeSimpleSelect}
		default:
			selecting.IDs = cloneIDs(ids)
			m.state = selecting
		}
	}

	return errors.Join(errs...)
}

// BeginEdit opens an edit, or refreshes the open one for the same feature.
func (m *Machine) BeginEdit(session *EditingSession) error {
	if current, ok := m.Editing(); ok && current.FeatureID != session.FeatureID {
		return domainerrors.ErrEditInProgress.WithDetails(current.FeatureID)
	}
	m.state = Editing{Session: session}

	return nil
}

// EndEdit closes the open edit and resets the toolkit to simple_select.
func (m *Machine) EndEdit() error {
	if _, ok := m.Editing(); !ok {
		return domainerrors.ErrNoEditSession
	}
	m.selected = nil

	return m.transition(Selecting{Mode: entity.ToolModeSimpleSelect}, service.ModeOptions{})
}

// trash deletes the selection and reverts; trash never stays active.
func (m *Machine) trash() error {
	var deleteErr error
	hadSelection := len(m.selected) > 0
	if hadSelection {
		deleted := make([]*geojson.Feature, 0, len(m.selected))
		for _, id := range m.selected {
			if feature := m.toolkit.Get(id); feature != nil {
				deleted = append(deleted, feature)
			}
		}
		deleteErr = errors.Wrap(m.toolkit.Delete(m.selected...), "delete selected features")
		m.selected = nil
		if deleteErr == nil && m.onTrash != nil && len(deleted) > 0 {
			m.onTrash(deleted)
		}
	}

	var next State = Idle{}
	if hadSelection {
		next = Selecting{Mode: entity.ToolModeSimpleSelect}
	}

	return errors.Join(deleteErr, m.transition(next, service.ModeOptions{}))
}

func (m *Machine) transition(next State, opts service.ModeOptions) error {
	previous := m.state
	m.state = next

	if previous.Tool() != next.Tool() || cursorFor(previous) != cursorFor(next) {
		m.presenter.SetCursor(cursorFor(next))
	}
	if drawing, ok := next.(Drawing); ok && drawing.Mode == entity.ToolModeDrawPoint && m.toolkit != nil {
		if err := m.toolkit.SetPointColor(drawing.LocationDrawType.PointColor()); err != nil {
			m.logger.Warn("Failed to set point color", slog.Any("error", err))
		}
	}

	return m.applyMode(next.Tool(), opts)
}

func (m *Machine) applyMode(mode entity.ToolMode, opts service.ModeOptions) error {
	if m.toolkit == nil {
		return domainerrors.ErrToolkitNotReady
	}
	if err := m.toolkit.ChangeMode(mode.ToolkitMode(), opts); err != nil {
		return errors.Wrapf(err, "change toolkit mode to %s", mode)
	}

	return nil
}

func cursorFor(state State) string {
	drawing, ok := state.(Drawing)
	if !ok {
		return CursorDefault
	}
	if drawing.Mode == entity.ToolModeDrawPolygon {
		return CursorPolygon
	}
	if drawing.LocationDrawType == entity.LocationTypePotential {
		return CursorPotentialLocation
	}

	return CursorCurrentLocation
}
