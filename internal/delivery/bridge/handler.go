package bridge

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"terrimap/config"
	deliverycontext "terrimap/internal/delivery/context"
	domainerrors "terrimap/internal/domain/errors"
	"terrimap/internal/domain/service"
	"terrimap/internal/errors"
	"terrimap/internal/feature"
	"terrimap/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HandlerParams holds dependencies for the session websocket handler, injected by Fx.
type HandlerParams struct {
	fx.In

	Logger   *slog.Logger
	Config   *config.Config
	Sessions usecase.SessionUsecase
}

// Handler upgrades map clients to websockets and runs one session each.
type Handler struct {
	logger       *slog.Logger
	sessions     usecase.SessionUsecase
	upgrader     websocket.Upgrader
	validate     *validator.Validate
	pingInterval time.Duration
	pongTimeout  time.Duration
}

// NewHandler is the constructor for Handler
func NewHandler(params HandlerParams) *Handler {
	cfg := params.Config.Session
	if cfg == nil {
		cfg = &config.SessionConfig{}
	}
	pingInterval := cfg.PingInterval
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	pongTimeout := cfg.PongTimeout
	if pongTimeout <= pingInterval {
		pongTimeout = 2 * pingInterval
	}

	return &Handler{
		logger:   params.Logger.With(slog.String("component", "bridge")),
		sessions: params.Sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
		},
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		pingInterval: pingInterval,
		pongTimeout:  pongTimeout,
	}
}

// checkOrigin allows every origin when none are configured.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}

	return func(r *http.Request) bool {
		return slices.Contains(allowed, r.Header.Get("Origin"))
	}
}

// Connect handles GET /ws/session. It blocks until the client disconnects.
func (h *Handler) Connect(c echo.Context) error {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)

	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader already answered the request
		logger.Warn("Websocket upgrade failed", slog.Any("error", err))
		return nil
	}

	h.serve(logger, ws)

	return nil
}

func (h *Handler) serve(logger *slog.Logger, ws *websocket.Conn) {
	conn := newConn(logger, ws, h.pingInterval, h.pongTimeout)
	client := newClient(conn, h.validate)
	session := h.sessions.Open(client.handles())
	client.session = session

	logger = logger.With(slog.String("session_id", session.ID()))
	conn.logger = logger

	go conn.writePump()
	conn.Send(TypeSessionReady, sessionReadyPayload{SessionID: session.ID()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer conn.Close()

		if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Map session failed", slog.Any("error", err))
		}
	}()

	if err := conn.readPump(func(msg Message) {
		if err := client.route(msg); err != nil {
			logger.Warn("Rejected client message", slog.String("type", msg.Type), slog.Any("error", err))
			client.sendError(err)
		}
	}); err != nil {
		logger.Warn("Websocket closed unexpectedly", slog.Any("error", err))
	}

	session.Close()
	cancel()
	<-done
}

// client routes the messages of one connection to its session and proxies.
type client struct {
	conn      *Conn
	validate  *validator.Validate
	mapProxy  *MapProxy
	toolkit   *ToolkitProxy
	presenter *PresenterProxy
	session   usecase.MapSession
}

func newClient(conn *Conn, validate *validator.Validate) *client {
	return &client{
		conn:      conn,
		validate:  validate,
		mapProxy:  NewMapProxy(conn),
		toolkit:   NewToolkitProxy(conn),
		presenter: NewPresenterProxy(conn),
	}
}

func (c *client) handles() usecase.SessionHandles {
	return usecase.SessionHandles{
		Map:       c.mapProxy,
		Toolkits:  c.toolkit,
		Presenter: c.presenter,
	}
}

func (c *client) route(msg Message) error {
	switch msg.Type {
	case TypePing:
		c.conn.Send(TypePong, nil)

	case TypeMapLoad:
		var payload viewportPayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		c.mapProxy.handleLoad(payload.Viewport)
	case TypeMapStyle:
		c.mapProxy.handleStyle()
	case TypeMapViewport:
		var payload viewportPayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		if payload.Viewport == nil {
			return domainerrors.ErrValidationFailed.WithDetails("viewport is required")
		}
		c.mapProxy.handleViewport(*payload.Viewport)
	case TypeMapClick, TypeMapContextMenu:
		var payload pointerPayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		eventType := service.MapEventClick
		if msg.Type == TypeMapContextMenu {
			eventType = service.MapEventContextMenu
		}
		c.mapProxy.handlePointer(eventType, payload)

	case TypeDrawReady:
		c.toolkit.handleReady()
		c.session.ToolkitReady()
	case TypeDrawCreate, TypeDrawUpdate, TypeDrawDelete:
		var payload featuresPayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		c.toolkit.handleFeatures(drawEventTypes[msg.Type], payload)
	case TypeDrawSelection:
		var payload selectionPayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		c.toolkit.handleSelection(featuresPayload{Features: payload.Features}, payload.IDs)

	case TypeUITool:
		var payload toolPayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		c.session.SelectTool(payload.Tool)
	case TypeUILocationType:
		var payload locationTypePayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		c.session.SetLocationDrawType(payload.LocationType)
	case TypeUILayer:
		var payload layerPayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		if payload.Visible == nil && payload.Opacity == nil {
			return domainerrors.ErrValidationFailed.WithDetails("layer change needs visible or opacity")
		}
		if payload.Visible != nil {
			c.session.SetLayerVisible(payload.LayerID, *payload.Visible)
		}
		if payload.Opacity != nil {
			c.session.SetLayerOpacity(payload.LayerID, *payload.Opacity)
		}
	case TypeUISave:
		c.session.Save()
	case TypeUICancel:
		c.session.Cancel()

	case TypeFormTerritory:
		// the synchronizer validates forms and reports back through the presenter
		var form feature.TerritoryForm
		if err := c.unmarshal(msg, &form); err != nil {
			return err
		}
		c.session.SubmitTerritory(form)
	case TypeFormLocation:
		var form feature.LocationForm
		if err := c.unmarshal(msg, &form); err != nil {
			return err
		}
		c.session.SubmitLocation(form)
	case TypeFormCancel:
		var payload formCancelPayload
		if err := c.decode(msg, &payload); err != nil {
			return err
		}
		c.session.CancelForm(payload.ScratchID)

	default:
		return domainerrors.ErrValidationFailed.WithDetails("unknown message type " + msg.Type)
	}

	return nil
}

var drawEventTypes = map[string]service.DrawEventType{
	TypeDrawCreate: service.DrawEventCreate,
	TypeDrawUpdate: service.DrawEventUpdate,
	TypeDrawDelete: service.DrawEventDelete,
}

func (c *client) unmarshal(msg Message, out any) error {
	if len(msg.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(msg.Type + ": " + err.Error()))
	}

	return nil
}

// decode unmarshals the payload into out and validates it.
func (c *client) decode(msg Message, out any) error {
	if err := c.unmarshal(msg, out); err != nil {
		return err
	}
	if err := c.validate.Struct(out); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return nil
		}

		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(msg.Type + ": " + err.Error()))
	}

	return nil
}

func (c *client) sendError(err error) {
	payload := errorPayload{Code: domainerrors.ErrInternalError.ErrorCode(), Message: domainerrors.ErrInternalError.Message()}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		payload.Code = appErr.ErrorCode()
		payload.Message = appErr.Error()
	}
	c.conn.Send(TypeError, payload)
}
