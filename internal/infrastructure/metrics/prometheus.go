package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the energy-es service
var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_es_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "energy_es_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPResponseSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "energy_es_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000},
		},
		[]string{"method", "path"},
	)

	// External API Metrics
	ExternalAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_es_external_api_requests_total",
			Help: "Total number of requests to the price API",
		},
		[]string{"service", "endpoint", "status_code"},
	)

	ExternalAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "energy_es_external_api_request_duration_seconds",
			Help:    "Price API request duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
		[]string{"service", "endpoint"},
	)

	ExternalAPIRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_es_external_api_retries_total",
			Help: "Total number of price API retry attempts",
		},
		[]string{"service", "endpoint", "attempt"},
	)

	// Settings store metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_es_store_operations_total",
			Help: "Total number of settings store operations",
		},
		[]string{"backend", "operation", "result"}, // result: success/error/not_found
	)

	// Business Metrics
	PriceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_es_price_requests_total",
			Help: "Total number of price requests by variable and unit",
		},
		[]string{"variable", "unit", "cache_result"}, // cache_result: hit/miss
	)

	PriceRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_es_price_refreshes_total",
			Help: "Total number of daily price refresh operations",
		},
		[]string{"result"}, // result: success/upstream_error/data_error/store_error
	)

	PriceRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "energy_es_price_refresh_duration_seconds",
			Help:    "Duration of a full refresh (fetch, validate, persist) in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
		},
	)

	DailyPriceExtremes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "energy_es_daily_price_eur_mwh",
			Help: "Minimum and maximum hourly price of the cached day in EUR/MWh",
		},
		[]string{"variable", "bound"}, // bound: min/max
	)

	CachedSeriesFresh = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "energy_es_cached_series_fresh",
			Help: "Whether the cached series belongs to the current day (1) or not (0)",
		},
		[]string{"variable"},
	)

	// Rate Limiting Metrics
	RateLimitRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_es_rate_limit_requests_total",
			Help: "Total number of requests processed by rate limiter",
		},
		[]string{"result"}, // result: allowed/blocked
	)

	RateLimitTokensRemaining = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "energy_es_rate_limit_tokens_remaining",
			Help: "Number of tokens remaining in rate limiter buckets",
		},
		[]string{"client_id"},
	)

	// Scheduler Metrics
	ScheduledRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "energy_es_scheduled_runs_total",
			Help: "Total number of scheduled warm-up runs",
		},
		[]string{"result"},
	)

	// Application Metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "energy_es_application_info",
			Help: "Application information",
		},
		[]string{"version", "store_backend"},
	)
)

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, path string, statusCode int, duration float64, responseSize int64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)

	if responseSize > 0 {
		HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordExternalAPICall records a price API call; duration in seconds
func RecordExternalAPICall(service, endpoint string, statusCode int, duration float64) {
	ExternalAPIRequestsTotal.WithLabelValues(service, endpoint, strconv.Itoa(statusCode)).Inc()
	ExternalAPIRequestDuration.WithLabelValues(service, endpoint).Observe(duration)
}

// RecordExternalAPIRetry records price API retry attempts
func RecordExternalAPIRetry(service, endpoint string, attempt int) {
	ExternalAPIRetries.WithLabelValues(service, endpoint, strconv.Itoa(attempt)).Inc()
}

// RecordStoreOperation records settings store operations
func RecordStoreOperation(backend, operation, result string) {
	StoreOperationsTotal.WithLabelValues(backend, operation, result).Inc()
}

// RecordPriceRequest records a price request and whether the cache served it
func RecordPriceRequest(variable, unit string, cacheHit bool) {
	cacheResult := "miss"
	if cacheHit {
		cacheResult = "hit"
	}
	PriceRequestsTotal.WithLabelValues(variable, unit, cacheResult).Inc()
}

// RecordPriceRefresh records the outcome and duration (seconds) of a refresh
func RecordPriceRefresh(result string, duration float64) {
	PriceRefreshesTotal.WithLabelValues(result).Inc()
	PriceRefreshDuration.Observe(duration)
}

// UpdateDailyExtremes updates the min/max gauges of a variable
func UpdateDailyExtremes(variable string, minValue, maxValue float64) {
	DailyPriceExtremes.WithLabelValues(variable, "min").Set(minValue)
	DailyPriceExtremes.WithLabelValues(variable, "max").Set(maxValue)
}

// UpdateSeriesFreshness updates the freshness gauge of a variable
func UpdateSeriesFreshness(variable string, fresh bool) {
	value := 0.0
	if fresh {
		value = 1.0
	}
	CachedSeriesFresh.WithLabelValues(variable).Set(value)
}

// RecordRateLimitResult records rate limiting results
func RecordRateLimitResult(allowed bool) {
	result := "blocked"
	if allowed {
		result = "allowed"
	}
	RateLimitRequestsTotal.WithLabelValues(result).Inc()
}

// UpdateRateLimitTokens updates remaining tokens gauge
func UpdateRateLimitTokens(clientID string, tokens float64) {
	RateLimitTokensRemaining.WithLabelValues(clientID).Set(tokens)
}

// RecordScheduledRun records the result of a scheduled warm-up
func RecordScheduledRun(result string) {
	ScheduledRunsTotal.WithLabelValues(result).Inc()
}

// SetApplicationInfo sets application information
func SetApplicationInfo(version, storeBackend string) {
	ApplicationInfo.WithLabelValues(version, storeBackend).Set(1)
}
