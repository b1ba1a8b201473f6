package feature

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"terrimap/internal/domain/entity"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/repository"
	"terrimap/internal/domain/service"
	"terrimap/internal/draw"
	"terrimap/internal/layer"
	"terrimap/internal/mocks/clock"
	"terrimap/internal/mocks/dispatch"
	"terrimap/internal/mocks/fake"
	mockRepo "terrimap/internal/mocks/repository"
	mockService "terrimap/internal/mocks/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// recordingMutator runs mutations inline and records invalidated keys.
type recordingMutator struct {
	invalidated []string
}

func (m *recordingMutator) Mutate(ctx context.Context, fn func(ctx context.Context) error, invalidates ...string) error {
	if err := fn(ctx); err != nil {
		return err
	}
	m.invalidated = append(m.invalidated, invalidates...)

	return nil
}

type syncFixtures struct {
	sync        *Synchronizer
	machine     *draw.Machine
	toolkit     *fake.Toolkit
	mapHandle   *fake.Map
	presenter   *fake.Presenter
	clock       *clock.Manual
	queue       *dispatch.Queue
	mutator     *recordingMutator
	territories *mockRepo.MockTerritoryRepository
	locations   *mockRepo.MockLocationRepository
	publisher   *mockService.MockEventPublisher
}

func createTestSynchronizer(t *testing.T) syncFixtures {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	clk := clock.NewManual()
	presenter := &fake.Presenter{}
	toolkit := fake.NewToolkit()
	mapHandle := fake.NewMap()
	machine := draw.NewMachine(logger, clk, presenter)
	machine.Attach(toolkit)

	fx := syncFixtures{
		machine:     machine,
		toolkit:     toolkit,
		mapHandle:   mapHandle,
		presenter:   presenter,
		clock:       clk,
		queue:       dispatch.NewQueue(),
		mutator:     &recordingMutator{},
		territories: mockRepo.NewMockTerritoryRepository(t),
		locations:   mockRepo.NewMockLocationRepository(t),
		publisher:   mockService.NewMockEventPublisher(t),
	}
	fx.sync = NewSynchronizer(Deps{
		Logger:      logger,
		Machine:     machine,
		Presenter:   presenter,
		Projector:   mapHandle,
		Scheduler:   clk,
		Dispatcher:  fx.queue,
		Mutator:     fx.mutator,
		Territories: fx.territories,
		Locations:   fx.locations,
		Publisher:   fx.publisher,
		SessionID:   "session-1",
		Now:         func() time.Time { return fixedNow },
	})

	return fx
}

func square(x, y float64) orb.Polygon {
	return orb.Polygon{{{x, y}, {x + 2, y}, {x + 2, y + 2}, {x, y + 2}, {x, y}}}
}

func persisted(id string, geometry orb.Geometry) *geojson.Feature {
	f := geojson.NewFeature(geometry)
	f.ID = id
	f.Properties[entity.PropID] = id

	return f
}

func collection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}

	return fc
}

func readySource(revision uint64, fc *geojson.FeatureCollection) layer.Source {
	status := layer.StatusReady
	if len(fc.Features) == 0 {
		status = layer.StatusEmpty
	}

	return layer.Source{Status: status, Data: fc, Revision: revision}
}

func defaultReadiness() Readiness {
	return Readiness{
		ToolkitReady: true,
		MapLoaded:    true,
		Territories: readySource(1, collection(
			persisted("T1", square(0, 0)),
			persisted("T2", square(10, 10)),
		)),
		CurrentLocations: readySource(1, collection(
			persisted("C1", orb.Point{1, 1}),
			persisted("C2", orb.Point{2, 2}),
			persisted("C3", orb.Point{3, 3}),
		)),
		PotentialLocations: readySource(1, collection()),
	}
}

func (fx syncFixtures) load(t *testing.T, readiness Readiness) {
	t.Helper()
	fx.sync.Refresh(readiness)
	fx.clock.Advance(DefaultSettleDelay)
	require.True(t, fx.sync.Loaded())
}

func TestSynchronizer_Load_AfterSettleDelay(t *testing.T) {
	fx := createTestSynchronizer(t)

	fx.sync.Refresh(defaultReadiness())
	assert.Empty(t, fx.toolkit.GetAll().Features)

	fx.clock.Advance(DefaultSettleDelay - time.Millisecond)
	assert.Empty(t, fx.toolkit.GetAll().Features)

	fx.clock.Advance(time.Millisecond)
	features := fx.toolkit.GetAll().Features
	require.Len(t, features, 5)
	assert.Equal(t, 1, fx.toolkit.DeleteAlls)

	for _, f := range features {
		id, ok := entity.PersistedID(f)
		require.True(t, ok)
		toolkitID, _ := entity.ToolkitID(f)
		assert.Equal(t, id, toolkitID)
	}
	locationType, ok := entity.FeatureLocationType(fx.toolkit.Get("C2"))
	require.True(t, ok)
	assert.Equal(t, entity.LocationTypeCurrent, locationType)
}

func TestSynchronizer_Load_WaitsForEverySource(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Readiness)
	}{
		{name: "toolkit", mutate: func(r *Readiness) { r.ToolkitReady = false }},
		{name: "map", mutate: func(r *Readiness) { r.MapLoaded = false }},
		{name: "territories", mutate: func(r *Readiness) { r.Territories = layer.Source{Status: layer.StatusLoading} }},
		{name: "potential never fetched", mutate: func(r *Readiness) { r.PotentialLocations = layer.Source{Status: layer.StatusLoading} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestSynchronizer(t)
			readiness := defaultReadiness()
			tt.mutate(&readiness)

			fx.sync.Refresh(readiness)
			fx.clock.Advance(time.Minute)

			assert.False(t, fx.sync.Loaded())
			assert.Zero(t, fx.toolkit.DeleteAlls)
		})
	}
}

func TestSynchronizer_Load_FailedSourceDoesNotBlock(t *testing.T) {
	tests := []struct {
		name   string
		source layer.Source
		want   int
	}{
		{name: "never resolved", source: layer.Source{Status: layer.StatusError}, want: 5},
		{name: "keeps last data", source: layer.Source{
			Status:   layer.StatusError,
			Data:     collection(persisted("P1", orb.Point{7, 7})),
			Revision: 3,
		}, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestSynchronizer(t)
			readiness := defaultReadiness()
			readiness.PotentialLocations = tt.source

			fx.load(t, readiness)

			assert.Len(t, fx.toolkit.GetAll().Features, tt.want)
			assert.NotNil(t, fx.toolkit.Get("T1"))
		})
	}
}

func TestSynchronizer_Load_KeepsOpenDrafts(t *testing.T) {
	fx := createTestSynchronizer(t)
	readiness := defaultReadiness()
	fx.load(t, readiness)

	drawn := square(5, 5)
	ids, err := fx.toolkit.Add(geojson.NewFeature(drawn))
	require.NoError(t, err)
	fx.sync.OnCreate([]*geojson.Feature{fx.toolkit.Get(ids[0])})

	readiness.CurrentLocations = readySource(2, readiness.CurrentLocations.Data)
	fx.sync.Refresh(readiness)
	fx.clock.Advance(DefaultSettleDelay)
	require.Equal(t, 2, fx.toolkit.DeleteAlls)
	require.NotNil(t, fx.toolkit.Get(ids[0]))

	fx.territories.EXPECT().
		CreateTerritory(mock.Anything, mock.MatchedBy(func(input *repository.TerritoryInput) bool {
			return input.Name == "North" && orb.Equal(input.Geometry, drawn)
		})).
		Return(&entity.Territory{ID: "T9"}, nil).
		Once()
	fx.publisher.EXPECT().
		PublishMutationEvent(mock.Anything, mock.Anything).
		Return(nil).
		Once()

	require.NoError(t, fx.sync.SubmitTerritory(TerritoryForm{ScratchID: ids[0], Name: "North"}))
	fx.queue.Flush()

	assert.Nil(t, fx.toolkit.Get(ids[0]))
	assert.Equal(t, []string{"territories"}, fx.mutator.invalidated)
}

func TestSynchronizer_Load_OncePerSnapshot(t *testing.T) {
	fx := createTestSynchronizer(t)
	readiness := defaultReadiness()
	fx.load(t, readiness)

	fx.sync.Refresh(readiness)
	fx.sync.Refresh(readiness)
	fx.clock.Advance(time.Minute)
	assert.Equal(t, 1, fx.toolkit.DeleteAlls)

	readiness.Territories = readySource(2, collection(persisted("T1", square(0, 0))))
	fx.sync.Refresh(readiness)
	fx.clock.Advance(DefaultSettleDelay)

	assert.Equal(t, 2, fx.toolkit.DeleteAlls)
	assert.Len(t, fx.toolkit.GetAll().Features, 4)
}

func TestSynchronizer_Load_SkipsFailedFeatures(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.toolkit.FailAdd["T2"] = true

	readiness := defaultReadiness()
	readiness.CurrentLocations.Data.Append(geojson.NewFeature(orb.Point{9, 9}))
	fx.load(t, readiness)

	assert.Len(t, fx.toolkit.GetAll().Features, 4)
	assert.Nil(t, fx.toolkit.Get("T2"))
	assert.NotNil(t, fx.toolkit.Get("C3"))
}

func TestSynchronizer_CreatePolygon_OpensFormAndCreatesOnce(t *testing.T) {
	fx := createTestSynchronizer(t)
	drawn := square(5, 5)
	ids, err := fx.toolkit.Add(geojson.NewFeature(drawn))
	require.NoError(t, err)
	scratch := fx.toolkit.Get(ids[0])

	fx.sync.OnCreate([]*geojson.Feature{scratch})

	require.Len(t, fx.presenter.TerritoryForms, 1)
	assert.Equal(t, ids[0], fx.presenter.TerritoryForms[0].ScratchID)
	assert.Equal(t, drawn, fx.presenter.TerritoryForms[0].Geometry)

	fx.territories.EXPECT().
		CreateTerritory(mock.Anything, mock.MatchedBy(func(input *repository.TerritoryInput) bool {
			return input.Name == "North" && input.GenerationMethod == GenerationManual &&
				orb.Equal(input.Geometry, drawn)
		})).
		Return(&entity.Territory{ID: "T9"}, nil).
		Once()
	fx.publisher.EXPECT().
		PublishMutationEvent(mock.Anything, mock.MatchedBy(func(event *service.FeatureMutationEvent) bool {
			return event.EntityID == "T9" && event.Action == service.MutationCreated &&
				event.Kind == "territory" && event.SessionID == "session-1"
		})).
		Return(nil).
		Once()

	err = fx.sync.SubmitTerritory(TerritoryForm{ScratchID: ids[0], Name: "North", Color: "#ff0000"})
	require.NoError(t, err)
	assert.Nil(t, fx.toolkit.Get(ids[0]))
	assert.Equal(t, 1, fx.queue.Len())

	fx.queue.Flush()

	assert.Equal(t, []string{"territories"}, fx.mutator.invalidated)
	notice, _ := fx.presenter.LastNotice()
	assert.Equal(t, service.NoticeSuccess, notice.Level)

	// the draft is gone once submitted
	err = fx.sync.SubmitTerritory(TerritoryForm{ScratchID: ids[0], Name: "North"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestSynchronizer_CreateFailure_DiscardsScratch(t *testing.T) {
	fx := createTestSynchronizer(t)
	ids, _ := fx.toolkit.Add(geojson.NewFeature(square(1, 1)))
	fx.sync.OnCreate([]*geojson.Feature{fx.toolkit.Get(ids[0])})

	fx.territories.EXPECT().
		CreateTerritory(mock.Anything, mock.Anything).
		Return(nil, errors.New("boom")).
		Once()

	require.NoError(t, fx.sync.SubmitTerritory(TerritoryForm{ScratchID: ids[0], Name: "South"}))
	fx.queue.Flush()

	assert.Nil(t, fx.toolkit.Get(ids[0]))
	assert.Empty(t, fx.mutator.invalidated)
	notice, _ := fx.presenter.LastNotice()
	assert.Equal(t, service.NoticeError, notice.Level)
}

func TestSynchronizer_SubmitTerritory_Invalid(t *testing.T) {
	fx := createTestSynchronizer(t)
	ids, _ := fx.toolkit.Add(geojson.NewFeature(square(1, 1)))
	fx.sync.OnCreate([]*geojson.Feature{fx.toolkit.Get(ids[0])})

	tests := []struct {
		name string
		form TerritoryForm
	}{
		{name: "missing name", form: TerritoryForm{ScratchID: ids[0]}},
		{name: "bad color", form: TerritoryForm{ScratchID: ids[0], Name: "x", Color: "red"}},
		{name: "negative customers", form: TerritoryForm{ScratchID: ids[0], Name: "x", CustomerCount: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fx.sync.SubmitTerritory(tt.form)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	assert.NotNil(t, fx.toolkit.Get(ids[0]))
	assert.Zero(t, fx.queue.Len())
}

func TestSynchronizer_CreatePoint_UsesTypeAtCreateTime(t *testing.T) {
	fx := createTestSynchronizer(t)
	require.NoError(t, fx.machine.SelectTool(entity.ToolModeDrawPoint))
	require.NoError(t, fx.machine.SetLocationDrawType(entity.LocationTypePotential))

	ids, _ := fx.toolkit.Add(geojson.NewFeature(orb.Point{4, 4}))
	fx.sync.OnCreate([]*geojson.Feature{fx.toolkit.Get(ids[0])})

	require.Len(t, fx.presenter.LocationForms, 1)
	assert.Equal(t, entity.LocationTypePotential, fx.presenter.LocationForms[0].LocationType)
	assert.Equal(t, orb.Point{4, 4}, fx.presenter.LocationForms[0].Geometry)

	// switching afterwards does not move the pending point
	require.NoError(t, fx.machine.SetLocationDrawType(entity.LocationTypeCurrent))

	fx.locations.EXPECT().
		CreateLocation(mock.Anything, entity.LocationTypePotential, mock.MatchedBy(func(input *repository.LocationInput) bool {
			return input.Name == "Depot" && input.Geometry == orb.Point{4, 4}
		})).
		Return(&entity.Location{ID: "P1"}, nil).
		Once()
	fx.publisher.EXPECT().PublishMutationEvent(mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, fx.sync.SubmitLocation(LocationForm{ScratchID: ids[0], Name: "Depot"}))
	fx.queue.Flush()

	assert.Equal(t, []string{"potential-locations"}, fx.mutator.invalidated)
}

func TestSynchronizer_CreateUnsupported(t *testing.T) {
	fx := createTestSynchronizer(t)
	ids, _ := fx.toolkit.Add(geojson.NewFeature(orb.LineString{{0, 0}, {1, 1}}))

	fx.sync.OnCreate([]*geojson.Feature{fx.toolkit.Get(ids[0])})

	assert.Empty(t, fx.presenter.TerritoryForms)
	assert.Empty(t, fx.presenter.LocationForms)
	assert.Nil(t, fx.toolkit.Get(ids[0]))
	notice, _ := fx.presenter.LastNotice()
	assert.Equal(t, service.NoticeWarning, notice.Level)
}

func TestSynchronizer_CancelForm(t *testing.T) {
	fx := createTestSynchronizer(t)
	ids, _ := fx.toolkit.Add(geojson.NewFeature(square(1, 1)))
	fx.sync.OnCreate([]*geojson.Feature{fx.toolkit.Get(ids[0])})

	fx.sync.CancelForm(ids[0])

	assert.Nil(t, fx.toolkit.Get(ids[0]))
	assert.ErrorIs(t, fx.sync.SubmitTerritory(TerritoryForm{ScratchID: ids[0], Name: "x"}), domainerrors.ErrValidationFailed)
}

func editedT1() *geojson.Feature {
	f := persisted("T1", orb.Polygon{{{0, 0}, {4, 0}, {4, 2}, {0, 2}, {0, 0}}})
	return f
}

func TestSynchronizer_EditThenCancel(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())
	require.NoError(t, fx.machine.SelectTool(entity.ToolModeSimpleSelect))
	require.NoError(t, fx.machine.OnSelectionChange([]string{"T1"}))

	edited := editedT1()
	_, err := fx.toolkit.Add(edited)
	require.NoError(t, err)
	fx.sync.OnUpdate([]*geojson.Feature{edited})

	session, ok := fx.machine.Editing()
	require.True(t, ok)
	assert.Equal(t, "T1", session.FeatureID)
	assert.Equal(t, entity.EntityKindTerritory, session.Kind)

	// clicking the feature itself keeps editing without a prompt
	assert.False(t, fx.sync.RequestConfirm(service.MapEvent{Type: service.MapEventClick, FeatureIDs: []string{"T1"}}))

	shown := fx.sync.RequestConfirm(service.MapEvent{Type: service.MapEventClick, Point: orb.Point{20, 20}})
	require.True(t, shown)
	require.Len(t, fx.presenter.Prompts, 1)
	assert.Equal(t, "T1", fx.presenter.Prompts[0].FeatureID)
	assert.Equal(t, service.Pixel{X: 2, Y: 1}, fx.presenter.Prompts[0].Anchor)

	require.NoError(t, fx.sync.Cancel())

	_, ok = fx.machine.Editing()
	assert.False(t, ok)
	assert.Equal(t, entity.ToolModeSimpleSelect, fx.machine.Tool())
	assert.Equal(t, "simple_select", fx.toolkit.Mode)
	assert.False(t, fx.presenter.PromptVisible)
	assert.Equal(t, square(0, 0), fx.toolkit.Get("T1").Geometry)
	assert.Zero(t, fx.queue.Len())
}

func TestSynchronizer_RightClickShowsPrompt(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())
	fx.sync.OnUpdate([]*geojson.Feature{editedT1()})

	assert.True(t, fx.sync.RequestConfirm(service.MapEvent{Type: service.MapEventContextMenu, FeatureIDs: []string{"T1"}}))
}

func TestSynchronizer_RepositionPrompt(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())
	fx.sync.OnUpdate([]*geojson.Feature{editedT1()})

	// no prompt yet, nothing to move
	fx.sync.RepositionPrompt()
	assert.Empty(t, fx.presenter.Prompts)

	require.True(t, fx.sync.RequestConfirm(service.MapEvent{Type: service.MapEventContextMenu}))
	fx.mapHandle.ProjectFunc = func(p orb.Point) service.Pixel {
		return service.Pixel{X: p[0] * 10, Y: p[1] * 10}
	}
	fx.sync.RepositionPrompt()

	require.Len(t, fx.presenter.Prompts, 2)
	assert.Equal(t, service.Pixel{X: 20, Y: 10}, fx.presenter.Prompts[1].Anchor)
}

func TestSynchronizer_NoPromptWithoutEdit(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())

	assert.False(t, fx.sync.RequestConfirm(service.MapEvent{Type: service.MapEventContextMenu}))
	assert.ErrorIs(t, fx.sync.Save(), domainerrors.ErrNoEditSession)
	assert.ErrorIs(t, fx.sync.Cancel(), domainerrors.ErrNoEditSession)
}

func TestSynchronizer_UpdateWithoutID(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())

	fx.sync.OnUpdate([]*geojson.Feature{geojson.NewFeature(square(0, 0))})

	_, ok := fx.machine.Editing()
	assert.False(t, ok)
}

func TestSynchronizer_SaveTwice_OneMutation(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())
	fx.sync.OnUpdate([]*geojson.Feature{editedT1()})

	fx.territories.EXPECT().
		UpdateTerritoryGeometry(mock.Anything, "T1", mock.MatchedBy(func(patch *repository.GeometryPatch) bool {
			return patch.UpdatedAt.Equal(fixedNow) && orb.Equal(patch.Geometry, editedT1().Geometry)
		})).
		Return(&entity.Territory{ID: "T1"}, nil).
		Once()
	fx.publisher.EXPECT().PublishMutationEvent(mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, fx.sync.Save())
	assert.True(t, fx.sync.Saving())
	require.NoError(t, fx.sync.Save())
	assert.Equal(t, 1, fx.queue.Len())
	assert.ErrorIs(t, fx.sync.Cancel(), domainerrors.ErrEditInProgress)

	fx.queue.Flush()

	assert.False(t, fx.sync.Saving())
	_, ok := fx.machine.Editing()
	assert.False(t, ok)
	assert.Equal(t, entity.ToolModeSimpleSelect, fx.machine.Tool())
	assert.Equal(t, []string{"territories"}, fx.mutator.invalidated)
}

func TestSynchronizer_SaveFailure_KeepsSession(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())
	fx.sync.OnUpdate([]*geojson.Feature{editedT1()})

	fx.territories.EXPECT().
		UpdateTerritoryGeometry(mock.Anything, "T1", mock.Anything).
		Return(nil, domainerrors.ErrRemoteUnavailable).
		Once()

	require.NoError(t, fx.sync.Save())
	fx.queue.Flush()

	session, ok := fx.machine.Editing()
	require.True(t, ok)
	assert.False(t, session.Pending)
	assert.Equal(t, editedT1().Geometry, session.Edited.Geometry)
	notice, _ := fx.presenter.LastNotice()
	assert.Equal(t, service.NoticeError, notice.Level)

	fx.territories.EXPECT().
		UpdateTerritoryGeometry(mock.Anything, "T1", mock.Anything).
		Return(&entity.Territory{ID: "T1"}, nil).
		Once()
	fx.publisher.EXPECT().PublishMutationEvent(mock.Anything, mock.Anything).Return(nil).Once()

	require.NoError(t, fx.sync.Save())
	fx.queue.Flush()

	_, ok = fx.machine.Editing()
	assert.False(t, ok)
}

func TestSynchronizer_SaveLocation(t *testing.T) {
	fx := createTestSynchronizer(t)
	readiness := defaultReadiness()
	readiness.PotentialLocations = readySource(1, collection(persisted("P1", orb.Point{5, 5})))
	fx.load(t, readiness)

	moved := persisted("P1", orb.Point{6, 6})
	fx.sync.OnUpdate([]*geojson.Feature{moved})

	fx.locations.EXPECT().
		UpdateLocationGeometry(mock.Anything, entity.LocationTypePotential, "P1", mock.Anything).
		Return(&entity.Location{ID: "P1"}, nil).
		Once()
	fx.publisher.EXPECT().
		PublishMutationEvent(mock.Anything, mock.MatchedBy(func(event *service.FeatureMutationEvent) bool {
			return event.LocationType == "potential" && event.Action == service.MutationUpdated
		})).
		Return(errors.New("broker down")).
		Once()

	require.NoError(t, fx.sync.Save())
	fx.queue.Flush()

	assert.Equal(t, []string{"potential-locations"}, fx.mutator.invalidated)
	_, ok := fx.machine.Editing()
	assert.False(t, ok)
}

func TestSynchronizer_SecondEditRejected(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())
	fx.sync.OnUpdate([]*geojson.Feature{editedT1()})

	movedT2 := persisted("T2", square(11, 11))
	_, _ = fx.toolkit.Add(movedT2)
	fx.sync.OnUpdate([]*geojson.Feature{movedT2})

	session, ok := fx.machine.Editing()
	require.True(t, ok)
	assert.Equal(t, "T1", session.FeatureID)
	assert.Equal(t, square(10, 10), fx.toolkit.Get("T2").Geometry)
}

func TestSynchronizer_LoadDeferredDuringEdit(t *testing.T) {
	fx := createTestSynchronizer(t)
	readiness := defaultReadiness()
	fx.load(t, readiness)
	fx.sync.OnUpdate([]*geojson.Feature{editedT1()})

	readiness.CurrentLocations = readySource(2, collection(persisted("C1", orb.Point{1, 1})))
	fx.sync.Refresh(readiness)
	fx.clock.Advance(DefaultSettleDelay)
	assert.Equal(t, 1, fx.toolkit.DeleteAlls)

	require.NoError(t, fx.sync.Cancel())
	fx.clock.Advance(DefaultSettleDelay)

	assert.Equal(t, 2, fx.toolkit.DeleteAlls)
	assert.Len(t, fx.toolkit.GetAll().Features, 3)
}

func TestSynchronizer_DeleteTerritory(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())

	fx.territories.EXPECT().DeleteTerritory(mock.Anything, "T2").Return(nil).Once()
	fx.publisher.EXPECT().
		PublishMutationEvent(mock.Anything, mock.MatchedBy(func(event *service.FeatureMutationEvent) bool {
			return event.Action == service.MutationDeleted && event.EntityID == "T2"
		})).
		Return(nil).
		Once()

	fx.sync.OnDelete([]*geojson.Feature{persisted("T2", square(10, 10))})
	fx.queue.Flush()

	assert.Equal(t, []string{"territories"}, fx.mutator.invalidated)
}

func TestSynchronizer_TrashToolDeletesTerritory(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())

	require.NoError(t, fx.machine.SelectTool(entity.ToolModeDirectSelect))
	require.NoError(t, fx.machine.OnSelectionChange([]string{"T2"}))

	fx.territories.EXPECT().DeleteTerritory(mock.Anything, "T2").Return(nil).Once()
	fx.publisher.EXPECT().
		PublishMutationEvent(mock.Anything, mock.MatchedBy(func(event *service.FeatureMutationEvent) bool {
			return event.Action == service.MutationDeleted && event.EntityID == "T2"
		})).
		Return(nil).
		Once()

	require.NoError(t, fx.machine.SelectTool(entity.ToolModeTrash))
	fx.queue.Flush()

	assert.Nil(t, fx.toolkit.Get("T2"))
	assert.Equal(t, []string{"territories"}, fx.mutator.invalidated)
}

func TestSynchronizer_DeletePoint_NoRemoteCall(t *testing.T) {
	fx := createTestSynchronizer(t)
	fx.load(t, defaultReadiness())

	fx.sync.OnDelete([]*geojson.Feature{persisted("C1", orb.Point{1, 1})})
	fx.sync.OnDelete([]*geojson.Feature{geojson.NewFeature(square(3, 3))})

	assert.Zero(t, fx.queue.Len())
	notice, _ := fx.presenter.LastNotice()
	assert.Equal(t, service.NoticeWarning, notice.Level)
}
