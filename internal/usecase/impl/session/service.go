package session

import (
	"log/slog"

	"terrimap/config"
	"terrimap/internal/domain/repository"
	"terrimap/internal/domain/service"
	"terrimap/internal/infra/query"
	"terrimap/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// ServiceParams holds dependencies for the session service, injected by Fx
type ServiceParams struct {
	fx.In

	Logger      *slog.Logger
	Config      *config.Config
	Layers      usecase.LayerUsecase
	Hub         *query.Hub
	Territories repository.TerritoryRepository
	Locations   repository.LocationRepository
	Publisher   service.EventPublisher
}

type sessionService struct {
	logger *slog.Logger
	deps   Deps
}

// NewService creates the session usecase
func NewService(params ServiceParams) usecase.SessionUsecase {
	deps := Deps{
		Logger:      params.Logger,
		Layers:      params.Layers,
		Hub:         params.Hub,
		Territories: params.Territories,
		Locations:   params.Locations,
		Publisher:   params.Publisher,
	}
	if cfg := params.Config.Session; cfg != nil {
		deps.SettleDelay = cfg.SettleDelay
		deps.OperationTimeout = cfg.OperationTimeout
	}

	return &sessionService{
		logger: params.Logger.With(slog.String("component", "sessions")),
		deps:   deps,
	}
}

// Open creates a session for one connected client. The caller runs it.
func (s *sessionService) Open(handles usecase.SessionHandles) usecase.MapSession {
	id := uuid.NewString()
	s.logger.Debug("Opening map session", slog.String("session_id", id))

	return New(id, s.deps, handles)
}
