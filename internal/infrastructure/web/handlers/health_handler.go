package handlers

import (
	"energy-es/internal/application/dto"
	"energy-es/internal/domain/entities"
	"energy-es/internal/domain/interfaces"
	"net/http"
)

// HealthHandler maneja los endpoints de health check
type HealthHandler struct {
	priceService interfaces.PriceService
}

// NewHealthHandler crea una nueva instancia del health handler
func NewHealthHandler(priceService interfaces.PriceService) *HealthHandler {
	return &HealthHandler{
		priceService: priceService,
	}
}

// Health godoc
// @Summary Basic health check
// @Description Verifies that the service is running. Responds without touching the price cache or the REE API.
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is running correctly"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"service": "running",
	}

	writeJSONResponse(w, http.StatusOK, dto.NewHealthResponse("healthy", services))
}

// Ready godoc
// @Summary Readiness check
// @Description Ready when the in-memory cache holds today's spot and PVPC series. Does not call the REE API.
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} dto.HealthResponse "Both series are fresh"
// @Failure 503 {object} dto.HealthResponse "At least one series is missing or from another day"
// @Router /ready [get]
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]string, len(entities.Variables))
	ready := true

	for _, v := range entities.Variables {
		if h.priceService.IsFresh(v) {
			services[string(v)] = "fresh"
			continue
		}
		services[string(v)] = "stale"
		ready = false
	}

	if !ready {
		writeJSONResponse(w, http.StatusServiceUnavailable, dto.NewHealthResponse("not_ready", services))
		return
	}

	writeJSONResponse(w, http.StatusOK, dto.NewHealthResponse("ready", services))
}
