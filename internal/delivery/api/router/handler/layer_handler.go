package handler

import (
	"log/slog"
	"net/http"

	"terrimap/internal/delivery/api/response"
	deliverycontext "terrimap/internal/delivery/context"
	"terrimap/internal/domain/entity"
	"terrimap/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LayerHandlerParams holds dependencies for LayerHandler, injected by Fx.
type LayerHandlerParams struct {
	fx.In

	Layers usecase.LayerUsecase
	Logger *slog.Logger
}

// LayerHandler serves layer data and analytics for legends and exports.
type LayerHandler struct {
	layers usecase.LayerUsecase
	logger *slog.Logger
}

// NewLayerHandler is the constructor for LayerHandler
func NewLayerHandler(params LayerHandlerParams) *LayerHandler {
	return &LayerHandler{
		layers: params.Layers,
		logger: params.Logger,
	}
}

// CollectionRequest selects one source collection.
type CollectionRequest struct {
	Type string `param:"type" validate:"required"`
}

// GetLayers returns the layer stack with current data.
func (h *LayerHandler) GetLayers(c echo.Context) error {
	layers, err := h.layers.GetLayers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, layers)
}

// GetCollection returns the features of one non-derived layer.
func (h *LayerHandler) GetCollection(c echo.Context) error {
	var req CollectionRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid layer type")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	fc, err := h.layers.Collection(c.Request().Context(), entity.LayerType(req.Type))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, fc)
}

// GetPopulation returns the population-per-boundary analysis.
func (h *LayerHandler) GetPopulation(c echo.Context) error {
	fc, err := h.layers.PopulationAnalysis(c.Request().Context())
	if err != nil {
		logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
		logger.Warn("Population analysis failed", slog.Any("error", err))

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, fc)
}

// GetExpansion returns boundaries ranked for expansion.
func (h *LayerHandler) GetExpansion(c echo.Context) error {
	fc, err := h.layers.ExpansionAnalysis(c.Request().Context())
	if err != nil {
		logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)
		logger.Warn("Expansion analysis failed", slog.Any("error", err))

		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, fc)
}
