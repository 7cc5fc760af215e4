package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/robfig/cron/v3"
)

// CronParser acepta especificaciones de seis campos (con segundos) y descriptores como @daily
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración: primero las reglas de los tags y después las cruzadas
func (v *Validator) Validate(config *Config) error {
	if err := v.validateTags(config); err != nil {
		return err
	}

	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validatePriceSource(config.PriceSource); err != nil {
		return fmt.Errorf("price_source config validation failed: %w", err)
	}

	if err := v.validateStore(config.Store); err != nil {
		return fmt.Errorf("store config validation failed: %w", err)
	}

	if err := v.validateScheduler(config.Scheduler); err != nil {
		return fmt.Errorf("scheduler config validation failed: %w", err)
	}

	if err := v.validateRateLimit(config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if _, err := config.Prices.Location(); err != nil {
		return fmt.Errorf("prices config validation failed: %w", err)
	}

	return nil
}

// validateTags aplica las reglas declaradas con `validate:"..."`
func (v *Validator) validateTags(config *Config) error {
	vd := validate.Struct(config)
	if !vd.Validate() {
		return fmt.Errorf("invalid configuration: %s", vd.Errors.One())
	}
	return nil
}

// validateServer valida la configuración del servidor
func (v *Validator) validateServer(config ServerConfig) error {
	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	if config.ReadTimeout <= 0 || config.WriteTimeout <= 0 {
		return fmt.Errorf("read_timeout and write_timeout must be positive")
	}

	return nil
}

// validatePriceSource valida la configuración de la API de precios
func (v *Validator) validatePriceSource(config PriceSourceConfig) error {
	if err := v.validateURL(config.BaseURL, "price_source base_url"); err != nil {
		return err
	}

	if config.Timeout <= 0 {
		return fmt.Errorf("price_source timeout must be positive, got: %v", config.Timeout)
	}

	if config.MaxAttempts > 1 && config.RetryDelay <= 0 {
		return fmt.Errorf("price_source retry_delay must be positive when max_attempts > 1")
	}

	return nil
}

// validateStore valida la configuración del almacén
func (v *Validator) validateStore(config StoreConfig) error {
	switch config.Backend {
	case "redis":
		return v.validateRedis(config.Redis)
	case "sqlite":
		if strings.TrimSpace(config.SQLite.Path) == "" {
			return fmt.Errorf("sqlite path cannot be empty")
		}
	}
	return nil
}

// validateRedis valida la configuración de Redis
func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	return nil
}

// validateScheduler comprueba que la expresión cron sea parseable
func (v *Validator) validateScheduler(config SchedulerConfig) error {
	if !config.Enabled {
		return nil
	}

	if _, err := CronParser.Parse(config.Spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", config.Spec, err)
	}

	return nil
}

// validateRateLimit valida la configuración de rate limiting
func (v *Validator) validateRateLimit(config RateLimitConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.Capacity <= 0 {
		return fmt.Errorf("rate_limit capacity must be positive when enabled, got: %d", config.Capacity)
	}

	if config.RefillRate <= 0 {
		return fmt.Errorf("rate_limit refill_rate must be positive when enabled, got: %d", config.RefillRate)
	}

	if config.Capacity > 10000 {
		return fmt.Errorf("rate_limit capacity too high: %d, max 10000", config.Capacity)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}
