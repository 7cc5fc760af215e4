package ree

import (
	"context"
	"energy-es/internal/domain/entities"
	"energy-es/internal/infrastructure/config"
	"energy-es/internal/infrastructure/logging"
	"energy-es/internal/infrastructure/metrics"
	"energy-es/pkg/utils"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/goccy/go-json"
)

const (
	DefaultBaseURL   = "https://apidatos.ree.es/en/datos/mercados/precios-mercados-tiempo-real"
	DefaultTimeout   = 20 * time.Second
	DefaultUserAgent = "energy-es/1.0"
	DefaultDelay     = 500 * time.Millisecond
	MaxBackoff       = 5 * time.Second

	serviceName  = "ree"
	endpointName = "/precios-mercados-tiempo-real"

	// La respuesta de un día ronda los 20 KB
	maxResponseBytes = 4 << 20
)

// RestClient implementa interfaces.PriceSource contra la API pública de Red Eléctrica
type RestClient struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts uint
	retryDelay  time.Duration
	userAgent   string
}

// NewRestClient crea un cliente con la configuración por defecto: un único intento
func NewRestClient() *RestClient {
	return &RestClient{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		maxAttempts: 1,
		retryDelay:  DefaultDelay,
		userAgent:   DefaultUserAgent,
	}
}

// NewRestClientWithConfig crea un cliente a partir de la sección price_source
func NewRestClientWithConfig(cfg config.PriceSourceConfig) *RestClient {
	client := NewRestClient()

	if cfg.BaseURL != "" {
		client.baseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		client.httpClient.Timeout = cfg.Timeout
	}
	if cfg.MaxAttempts > 1 {
		client.maxAttempts = uint(cfg.MaxAttempts)
	}
	if cfg.RetryDelay > 0 {
		client.retryDelay = cfg.RetryDelay
	}
	if cfg.UserAgent != "" {
		client.userAgent = cfg.UserAgent
	}

	return client
}

// FetchDailyPrices descarga las series spot y PVPC del día en una sola petición.
// Los errores de estado HTTP y de datos nunca se reintentan.
func (c *RestClient) FetchDailyPrices(ctx context.Context, day time.Time) (*entities.DailyPrices, error) {
	requestURL, err := c.buildURL(day)
	if err != nil {
		return nil, err
	}

	var prices *entities.DailyPrices

	retryErr := retry.Do(
		func() error {
			reqPrices, reqErr := c.doRequest(ctx, requestURL)
			if reqErr != nil {
				return reqErr
			}

			prices = reqPrices
			return nil
		},
		retry.Attempts(c.maxAttempts),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(MaxBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errTransport) && ctx.Err() == nil
		}),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			// retry-go también lo invoca tras el último intento
			if n+1 >= c.maxAttempts {
				return
			}
			metrics.RecordExternalAPIRetry(serviceName, endpointName, int(n+1))

			logging.Warn(ctx, "REE API retry attempt", logging.Fields{
				"service":      serviceName,
				"attempt":      n + 1,
				"max_attempts": c.maxAttempts,
				"error":        err.Error(),
			})
		}),
	)

	if retryErr != nil {
		if errors.Is(retryErr, entities.ErrUpstream) || errors.Is(retryErr, entities.ErrData) {
			return nil, retryErr
		}
		// Cancelación del contexto durante la espera entre intentos
		return nil, fmt.Errorf("%w: %v", entities.ErrUpstream, retryErr)
	}

	return prices, nil
}

func (c *RestClient) buildURL(day time.Time) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid REE base url %q: %w", c.baseURL, err)
	}

	start, end := utils.RequestWindow(day)
	q := u.Query()
	q.Set("start_date", start)
	q.Set("end_date", end)
	q.Set("time_trunc", "hour")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// doRequest realiza una única petición HTTP y decodifica la respuesta
func (c *RestClient) doRequest(ctx context.Context, requestURL string) (*entities.DailyPrices, error) {
	logging.ExternalAPI().RequestStarted(ctx, serviceName, requestURL, http.MethodGet)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", entities.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration := time.Since(requestStart)
	durationMs := float64(requestDuration.Nanoseconds()) / 1e6

	if err != nil {
		metrics.RecordExternalAPICall(serviceName, endpointName, 0, requestDuration.Seconds())
		logging.ExternalAPI().RequestFailed(ctx, serviceName, endpointName, 0, err, durationMs)
		return nil, fmt.Errorf("%w: %w: %v", entities.ErrUpstream, errTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPICall(serviceName, endpointName, resp.StatusCode, requestDuration.Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := fmt.Errorf("%w: HTTP %s", entities.ErrUpstream, resp.Status)
		logging.ExternalAPI().RequestFailed(ctx, serviceName, endpointName, resp.StatusCode, statusErr, durationMs)
		return nil, statusErr
	}

	var body Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		decodeErr := fmt.Errorf("%w: failed to decode response: %v", entities.ErrData, err)
		logging.ExternalAPI().RequestFailed(ctx, serviceName, endpointName, resp.StatusCode, decodeErr, durationMs)
		return nil, decodeErr
	}

	prices, err := body.DailyPrices()
	if err != nil {
		logging.ExternalAPI().RequestFailed(ctx, serviceName, endpointName, resp.StatusCode, err, durationMs)
		return nil, err
	}

	logging.ExternalAPI().RequestCompleted(ctx, serviceName, endpointName, resp.StatusCode, durationMs)
	return prices, nil
}
