package server

import (
	"energy-es/internal/docs"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/metrics"
	"energy-es/internal/infrastructure/ratelimit"
	"energy-es/internal/infrastructure/web/handlers"
	"energy-es/internal/infrastructure/web/middleware"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter monta las rutas y la cadena de middlewares:
// tracing → logging → métricas → CORS → rate limit → handler
func NewRouter(priceService interfaces.PriceService, loc *time.Location, rateLimiter *ratelimit.RateLimitMiddleware) http.Handler {
	pricesHandler := handlers.NewPricesHandler(priceService, loc)
	healthHandler := handlers.NewHealthHandler(priceService)

	r := mux.NewRouter()
	r.StrictSlash(true)

	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", healthHandler.Ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/prices", pricesHandler.GetAllPrices).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/prices/{variable}", pricesHandler.GetPrices).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/prices/{variable}/summary", pricesHandler.GetSummary).Methods(http.MethodGet, http.MethodOptions)

	docs.SwaggerInfo.BasePath = "/"
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Handle("/docs", http.RedirectHandler("/swagger/index.html", http.StatusMovedPermanently))

	var handler http.Handler = r
	if rateLimiter != nil {
		handler = rateLimiter.Handler(handler)
	}
	handler = middleware.CORSMiddleware(handler)
	handler = metrics.HTTPMetricsMiddleware(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestTracingMiddleware(handler)

	return handler
}
