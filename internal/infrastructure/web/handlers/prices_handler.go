package handlers

import (
	"context"
	"energy-es/internal/application/dto"
	"energy-es/internal/domain/entities"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/logging"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// Códigos de error expuestos en el cuerpo de las respuestas
const (
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeUpstreamError    = "UPSTREAM_ERROR"
	CodeDataError        = "DATA_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// PricesHandler maneja los endpoints de precios de la electricidad
type PricesHandler struct {
	priceService interfaces.PriceService
	mapper       *dto.PriceMapper
}

// NewPricesHandler crea un handler que calcula el día de las series en loc
func NewPricesHandler(priceService interfaces.PriceService, loc *time.Location) *PricesHandler {
	return &PricesHandler{
		priceService: priceService,
		mapper:       dto.NewPriceMapper(loc),
	}
}

// GetPrices godoc
// @Summary Get today's hourly prices
// @Description Returns the 24 hourly prices of today for the requested series. The cache is refreshed from REE when it does not hold today's data.
// @Tags prices
// @Accept json
// @Produce json
// @Param variable path string true "Price series" Enums(spot, pvpc)
// @Param unit query string false "Unit: m (€/MWh) or k (€/kWh)" Enums(m, k) default(m)
// @Success 200 {object} dto.PricesResponse "Hourly prices sorted by time"
// @Failure 400 {object} dto.ErrorResponse "Unknown variable or unit"
// @Failure 502 {object} dto.ErrorResponse "REE API failed or returned unusable data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/prices/{variable} [get]
func (h *PricesHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	variableParam := mux.Vars(r)["variable"]

	req, err := dto.NewPricesRequest(variableParam, r.URL.Query().Get("unit"))
	if err != nil {
		h.handleError(ctx, w, variableParam, err)
		return
	}

	series, err := h.priceService.GetPrices(ctx, req.Variable, req.Unit)
	if err != nil {
		h.handleError(ctx, w, string(req.Variable), err)
		return
	}

	writeJSONResponse(w, http.StatusOK, h.mapper.ToPricesResponse(req.Variable, req.Unit, series))
}

// GetSummary godoc
// @Summary Get today's prices with min and max
// @Description Returns today's series together with its cheapest and most expensive hour, labelled as "HH:MM, value unit".
// @Tags prices
// @Accept json
// @Produce json
// @Param variable path string true "Price series" Enums(spot, pvpc)
// @Param unit query string false "Unit: m (€/MWh) or k (€/kWh)" Enums(m, k) default(m)
// @Success 200 {object} dto.SummaryResponse "Series with its extremes"
// @Failure 400 {object} dto.ErrorResponse "Unknown variable or unit"
// @Failure 502 {object} dto.ErrorResponse "REE API failed or returned unusable data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/prices/{variable}/summary [get]
func (h *PricesHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	variableParam := mux.Vars(r)["variable"]

	req, err := dto.NewPricesRequest(variableParam, r.URL.Query().Get("unit"))
	if err != nil {
		h.handleError(ctx, w, variableParam, err)
		return
	}

	summary, err := h.priceService.GetSummary(ctx, req.Variable, req.Unit)
	if err != nil {
		h.handleError(ctx, w, string(req.Variable), err)
		return
	}

	writeJSONResponse(w, http.StatusOK, h.mapper.ToSummaryResponse(summary))
}

// GetAllPrices godoc
// @Summary Get both price series
// @Description Returns today's spot and PVPC series in the same unit.
// @Tags prices
// @Accept json
// @Produce json
// @Param unit query string false "Unit: m (€/MWh) or k (€/kWh)" Enums(m, k) default(m)
// @Success 200 {object} dto.AllPricesResponse "Spot and PVPC series"
// @Failure 400 {object} dto.ErrorResponse "Unknown unit"
// @Failure 502 {object} dto.ErrorResponse "REE API failed or returned unusable data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/prices [get]
func (h *PricesHandler) GetAllPrices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unitParam := r.URL.Query().Get("unit")

	unit, err := dto.ParseUnitParam(unitParam)
	if err != nil {
		h.handleError(ctx, w, unitParam, err)
		return
	}

	daily, err := h.priceService.GetDaily(ctx, unit)
	if err != nil {
		h.handleError(ctx, w, string(unit), err)
		return
	}

	all := make(map[entities.Variable]entities.PriceSeries, len(entities.Variables))
	for _, v := range entities.Variables {
		all[v] = daily.Series(v)
	}

	writeJSONResponse(w, http.StatusOK, h.mapper.ToAllPricesResponse(unit, all))
}

// handleError traduce los errores del dominio a respuestas HTTP. Aquí es donde se registran:
// la caché devuelve los errores sin loguearlos.
func (h *PricesHandler) handleError(ctx context.Context, w http.ResponseWriter, input string, err error) {
	businessLogger := logging.Business()

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		businessLogger.ValidationFailed(ctx, input, err.Error())
		writeErrorResponse(w, http.StatusBadRequest, CodeInvalidParameter, err.Error())
	case errors.Is(err, entities.ErrUpstream):
		businessLogger.RefreshFailed(ctx, input, err)
		writeErrorResponse(w, http.StatusBadGateway, CodeUpstreamError, err.Error())
	case errors.Is(err, entities.ErrData):
		businessLogger.RefreshFailed(ctx, input, err)
		writeErrorResponse(w, http.StatusBadGateway, CodeDataError, err.Error())
	default:
		logging.ErrorWithError(ctx, "Failed to serve prices", err, logging.Fields{
			"variable": input,
		})
		writeErrorResponse(w, http.StatusInternalServerError, CodeInternalError, "Internal server error")
	}
}
