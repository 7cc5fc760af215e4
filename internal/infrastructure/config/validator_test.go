package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_DefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(GetDefaultConfig()))
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(c *Config)
		errorContains string
	}{
		{
			name:          "Inválido - puerto fuera de rango",
			mutate:        func(c *Config) { c.Server.Port = 70000 },
			errorContains: "invalid configuration",
		},
		{
			name:          "Inválido - backend desconocido",
			mutate:        func(c *Config) { c.Store.Backend = "etcd" },
			errorContains: "invalid configuration",
		},
		{
			name:          "Inválido - nivel de log desconocido",
			mutate:        func(c *Config) { c.Logging.Level = "verbose" },
			errorContains: "invalid configuration",
		},
		{
			name:          "Inválido - demasiados intentos",
			mutate:        func(c *Config) { c.PriceSource.MaxAttempts = 9 },
			errorContains: "invalid configuration",
		},
		{
			name:          "Inválido - shutdown timeout cero",
			mutate:        func(c *Config) { c.Server.ShutdownTimeout = 0 },
			errorContains: "shutdown_timeout must be positive",
		},
		{
			name:          "Inválido - shutdown timeout excesivo",
			mutate:        func(c *Config) { c.Server.ShutdownTimeout = 10 * time.Minute },
			errorContains: "shutdown_timeout too long",
		},
		{
			name:          "Inválido - esquema de URL",
			mutate:        func(c *Config) { c.PriceSource.BaseURL = "ftp://apidatos.ree.es/x" },
			errorContains: "must be http or https",
		},
		{
			name:          "Inválido - URL sin host",
			mutate:        func(c *Config) { c.PriceSource.BaseURL = "https://" },
			errorContains: "must have a host",
		},
		{
			name:          "Inválido - timeout de la API",
			mutate:        func(c *Config) { c.PriceSource.Timeout = 0 },
			errorContains: "timeout must be positive",
		},
		{
			name: "Inválido - reintentos sin espera",
			mutate: func(c *Config) {
				c.PriceSource.MaxAttempts = 3
				c.PriceSource.RetryDelay = 0
			},
			errorContains: "retry_delay must be positive",
		},
		{
			name: "Inválido - redis sin puerto",
			mutate: func(c *Config) {
				c.Store.Backend = "redis"
				c.Store.Redis.Addr = "localhost"
			},
			errorContains: "expected host:port",
		},
		{
			name: "Inválido - sqlite sin ruta",
			mutate: func(c *Config) {
				c.Store.Backend = "sqlite"
				c.Store.SQLite.Path = " "
			},
			errorContains: "sqlite path cannot be empty",
		},
		{
			name:          "Inválido - cron",
			mutate:        func(c *Config) { c.Scheduler.Spec = "every day" },
			errorContains: "invalid cron spec",
		},
		{
			name: "Válido - cron inválido con scheduler apagado",
			mutate: func(c *Config) {
				c.Scheduler.Enabled = false
				c.Scheduler.Spec = "every day"
			},
		},
		{
			name:          "Inválido - rate limit sin capacidad",
			mutate:        func(c *Config) { c.RateLimit.Capacity = 0 },
			errorContains: "capacity must be positive",
		},
		{
			name:          "Inválido - zona horaria",
			mutate:        func(c *Config) { c.Prices.Timezone = "Mars/Olympus" },
			errorContains: "invalid timezone",
		},
		{
			name:   "Válido - descriptor cron",
			mutate: func(c *Config) { c.Scheduler.Spec = "@daily" },
		},
		{
			name:   "Válido - zona horaria explícita",
			mutate: func(c *Config) { c.Prices.Timezone = "UTC" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)

			err := NewValidator().Validate(cfg)
			if tt.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.errorContains), "got: %v", err)
		})
	}
}

func TestPricesConfig_Location(t *testing.T) {
	loc, err := PricesConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = PricesConfig{Timezone: "local"}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = PricesConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
