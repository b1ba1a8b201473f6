// Package session assembles the editing engine of one connected map client:
// drawing state machine, feature synchronizer, renderer, progress indicator
// and layer store, all driven from a single event loop.
package session

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/domain/service"
	"terrimap/internal/draw"
	"terrimap/internal/errors"
	"terrimap/internal/feature"
	"terrimap/internal/infra/metrics"
	"terrimap/internal/infra/query"
	"terrimap/internal/layer"
	"terrimap/internal/progress"
	"terrimap/internal/render"
	"terrimap/internal/usecase"

	"github.com/paulmach/orb/geojson"
)

// Deps are the shared collaborators of every engine.
type Deps struct {
	Logger           *slog.Logger
	Layers           usecase.LayerUsecase
	Hub              *query.Hub
	Territories      repository.TerritoryRepository
	Locations        repository.LocationRepository
	Publisher        service.EventPublisher
	SettleDelay      time.Duration
	OperationTimeout time.Duration
}

// Engine is a usecase.MapSession. Apart from the exported commands, which
// only post to the loop, nothing here is safe for concurrent use.
type Engine struct {
	id     string
	logger *slog.Logger
	loop   eventLoop
	runner *loop

	handles  usecase.SessionHandles
	layers   usecase.LayerUsecase
	query    *query.Client
	store    *layer.Store
	machine  *draw.Machine
	sync     *feature.Synchronizer
	renderer *render.Adapter
	progress *progress.Heuristic

	subs       []service.Subscription
	toolkitSub service.Subscription
	fetching   map[entity.LayerType]bool
	refetch    map[entity.LayerType]bool

	state     service.EditorState
	published bool
}

var _ usecase.MapSession = (*Engine)(nil)

// New creates an engine running on its own loop. Nothing happens until Run.
func New(id string, deps Deps, handles usecase.SessionHandles) *Engine {
	logger := deps.Logger.With(slog.String("session_id", id))
	timeout := deps.OperationTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	l := newLoop(logger, timeout)

	engine := newEngine(id, logger, l, deps, handles)
	engine.runner = l

	return engine
}

func newEngine(id string, logger *slog.Logger, loop eventLoop, deps Deps, handles usecase.SessionHandles) *Engine {
	client := query.NewClient(deps.Hub)
	machine := draw.NewMachine(logger, loop, handles.Presenter)

	return &Engine{
		id:       id,
		logger:   logger.With(slog.String("component", "session")),
		loop:     loop,
		handles:  handles,
		layers:   deps.Layers,
		query:    client,
		store:    layer.NewStore(nil),
		machine:  machine,
		renderer: render.NewAdapter(logger, handles.Map),
		progress: progress.NewHeuristic(loop, handles.Presenter.ShowProgress),
		sync: feature.NewSynchronizer(feature.Deps{
			Logger:      logger,
			Machine:     machine,
			Presenter:   handles.Presenter,
			Projector:   handles.Map,
			Scheduler:   loop,
			Dispatcher:  loop,
			Mutator:     client,
			Territories: deps.Territories,
			Locations:   deps.Locations,
			Publisher:   deps.Publisher,
			SessionID:   id,
			SettleDelay: deps.SettleDelay,
		}),
		fetching: make(map[entity.LayerType]bool),
		refetch:  make(map[entity.LayerType]bool),
	}
}

// ID returns the session id.
func (e *Engine) ID() string {
	return e.id
}

// Run starts the engine on the calling goroutine and blocks until ctx is
// done or Close is called.
func (e *Engine) Run(ctx context.Context) error {
	if e.runner == nil {
		return errors.New("engine has no runnable loop")
	}

	metrics.ActiveSessions.Inc()
	defer metrics.ActiveSessions.Dec()

	e.logger.Info("Map session started")
	e.runner.invoke(e.start)
	defer e.stop()

	return e.runner.run(ctx, e.publishState)
}

// Close stops the loop; Run returns after the current callback.
func (e *Engine) Close() {
	if e.runner != nil {
		e.runner.Close()
	}
}

// start subscribes to every event source and issues the initial fetches.
func (e *Engine) start() {
	e.subs = append(e.subs,
		e.store.Subscribe(e.onLayers),
		e.handles.Map.Subscribe(func(event service.MapEvent) {
			e.loop.Post(func() { e.onMapEvent(event) })
		}),
		e.query.OnActivity(func(bool) {
			// The count is read again on the loop; transitions may arrive
			// out of order from different goroutines.
			e.loop.Post(func() { e.progress.SetBusy(e.query.InFlight() > 0) })
		}),
		e.query.OnInvalidate(func(keys []string) {
			e.loop.Post(func() { e.onInvalidate(keys) })
		}),
	)

	for _, cfg := range e.store.Configs() {
		if !cfg.Type.IsDerived() {
			e.fetch(cfg.Type)
		}
	}

	if e.handles.Map.Loaded() {
		e.onMapLoaded()
	}
	e.publishState()
}

func (e *Engine) stop() {
	for _, sub := range e.subs {
		sub.Unsubscribe()
	}
	e.subs = nil
	if e.toolkitSub != nil {
		e.toolkitSub.Unsubscribe()
		e.toolkitSub = nil
	}
	e.sync.Close()
	e.progress.Stop()
	e.machine.Detach()
	e.logger.Info("Map session stopped")
}

// fetch loads one source collection through the query cache. A key already
// in flight is fetched once more when that request completes.
func (e *Engine) fetch(layerType entity.LayerType) {
	fetcher, ok := e.layers.Fetcher(layerType)
	if !ok {
		return
	}
	if e.fetching[layerType] {
		e.refetch[layerType] = true
		return
	}
	e.fetching[layerType] = true

	var data *geojson.FeatureCollection
	e.loop.Dispatch(func(ctx context.Context) error {
		fc, err := e.query.Fetch(ctx, layerType.String(), query.Fetcher(fetcher))
		data = fc

		return err
	}, func(err error) {
		e.fetching[layerType] = false
		if err != nil {
			e.logger.Error("Failed to load layer source",
				slog.String("layer", layerType.String()),
				slog.Any("error", err),
			)
			e.store.SetSourceError(layerType)
		} else {
			e.store.SetSource(layerType, data)
		}

		if e.refetch[layerType] {
			delete(e.refetch, layerType)
			e.fetch(layerType)
		}
	})
}

func (e *Engine) onInvalidate(keys []string) {
	for _, key := range keys {
		layerType := entity.LayerType(key)
		if !layerType.IsValid() || layerType.IsDerived() {
			continue
		}
		e.fetch(layerType)
	}
}

// onLayers runs after every store rebuild.
func (e *Engine) onLayers(layers []entity.Layer) {
	e.renderer.Render(layers)
	e.handles.Presenter.PublishLayers(layers)
	e.refresh()
}

func (e *Engine) refresh() {
	e.sync.Refresh(feature.Readiness{
		ToolkitReady:       e.machine.Ready(),
		MapLoaded:          e.handles.Map.Loaded(),
		Territories:        e.store.Source(entity.LayerTypeTerritories),
		CurrentLocations:   e.store.Source(entity.LayerTypeCurrentLocations),
		PotentialLocations: e.store.Source(entity.LayerTypePotentialLocations),
	})
}

func (e *Engine) onMapEvent(event service.MapEvent) {
	switch event.Type {
	case service.MapEventLoad:
		e.onMapLoaded()
	case service.MapEventStyleChanged:
		e.renderer.OnStyleChanged()
	case service.MapEventClick, service.MapEventContextMenu:
		e.sync.RequestConfirm(event)
	case service.MapEventViewport:
		e.sync.RepositionPrompt()
	}
}

func (e *Engine) onMapLoaded() {
	e.renderer.Render(e.store.Layers())
	e.attach()
	e.refresh()
}

// attach binds the drawing toolkit once the map is loaded.
func (e *Engine) attach() {
	if !e.handles.Map.Loaded() || e.machine.Ready() {
		return
	}

	e.machine.AttachWithRetry(e.handles.Toolkits, e.handles.Map, func() {
		if e.toolkitSub != nil {
			e.toolkitSub.Unsubscribe()
		}
		e.toolkitSub = e.machine.Toolkit().Subscribe(func(event service.DrawEvent) {
			e.loop.Post(func() { e.onDrawEvent(event) })
		})
		e.logger.Info("Drawing toolkit attached")
		e.refresh()
	})
}

func (e *Engine) onDrawEvent(event service.DrawEvent) {
	switch event.Type {
	case service.DrawEventCreate:
		e.sync.OnCreate(event.Features)
	case service.DrawEventUpdate:
		e.sync.OnUpdate(event.Features)
	case service.DrawEventDelete:
		e.sync.OnDelete(event.Features)
	case service.DrawEventSelectionChange:
		ids := make([]string, 0, len(event.Features))
		for _, f := range event.Features {
			if id, ok := entity.ToolkitID(f); ok {
				ids = append(ids, id)
			}
		}
		if err := e.machine.OnSelectionChange(ids); err != nil {
			e.logger.Warn("Selection sync incomplete", slog.Any("error", err))
		}
	}
}

// publishState sends the editor snapshot when it changed since the last turn.
func (e *Engine) publishState() {
	state := service.EditorState{
		Tool:             e.machine.Tool(),
		LocationDrawType: e.machine.LocationDrawType(),
		SelectedIDs:      e.machine.SelectedIDs(),
		Saving:           e.sync.Saving(),
		Interactive:      e.machine.Ready(),
	}
	if session, ok := e.machine.Editing(); ok {
		state.EditingID = session.FeatureID
	}
	if state.SelectedIDs == nil {
		state.SelectedIDs = []string{}
	}

	if e.published && sameState(e.state, state) {
		return
	}
	e.state = state
	e.published = true
	e.handles.Presenter.PublishState(state)
}

func sameState(a, b service.EditorState) bool {
	return a.Tool == b.Tool &&
		a.LocationDrawType == b.LocationDrawType &&
		a.EditingID == b.EditingID &&
		a.Saving == b.Saving &&
		a.Interactive == b.Interactive &&
		slices.Equal(a.SelectedIDs, b.SelectedIDs)
}

// command runs fn on the loop and reports its error to the user.
func (e *Engine) command(name string, fn func() error) {
	posted := e.loop.Post(func() {
		err := fn()
		if err == nil {
			return
		}

		e.logger.Warn("Command failed", slog.String("command", name), slog.Any("error", err))

		var appErr domainerrors.AppError
		message := "Something went wrong"
		if errors.As(err, &appErr) {
			message = appErr.Message()
		}
		e.handles.Presenter.Notify(service.NoticeWarning, message)
	})
	if !posted {
		e.logger.Debug("Command dropped, session closed", slog.String("command", name))
	}
}

// ToolkitReady implements usecase.MapSession.
func (e *Engine) ToolkitReady() {
	e.loop.Post(e.attach)
}

// SelectTool implements usecase.MapSession.
func (e *Engine) SelectTool(mode entity.ToolMode) {
	e.command("select_tool", func() error {
		return e.machine.SelectTool(mode)
	})
}

// SetLocationDrawType implements usecase.MapSession.
func (e *Engine) SetLocationDrawType(locationType entity.LocationType) {
	e.command("location_type", func() error {
		return e.machine.SetLocationDrawType(locationType)
	})
}

// SetLayerVisible implements usecase.MapSession.
func (e *Engine) SetLayerVisible(layerID string, visible bool) {
	e.command("layer_visibility", func() error {
		return e.store.SetVisible(layerID, visible)
	})
}

// SetLayerOpacity implements usecase.MapSession.
func (e *Engine) SetLayerOpacity(layerID string, opacity float64) {
	e.command("layer_opacity", func() error {
		return e.store.SetOpacity(layerID, opacity)
	})
}

// Save implements usecase.MapSession.
func (e *Engine) Save() {
	e.command("save", e.sync.Save)
}

// Cancel implements usecase.MapSession.
func (e *Engine) Cancel() {
	e.command("cancel", e.sync.Cancel)
}

// SubmitTerritory implements usecase.MapSession.
func (e *Engine) SubmitTerritory(form feature.TerritoryForm) {
	e.command("submit_territory", func() error {
		return e.sync.SubmitTerritory(form)
	})
}

// SubmitLocation implements usecase.MapSession.
func (e *Engine) SubmitLocation(form feature.LocationForm) {
	e.command("submit_location", func() error {
		return e.sync.SubmitLocation(form)
	})
}

// CancelForm implements usecase.MapSession.
func (e *Engine) CancelForm(scratchID string) {
	e.command("cancel_form", func() error {
		e.sync.CancelForm(scratchID)
		return nil
	})
}
