package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	PriceSource PriceSourceConfig `yaml:"price_source" mapstructure:"price_source"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Scheduler   SchedulerConfig   `yaml:"scheduler" mapstructure:"scheduler"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Prices      PricesConfig      `yaml:"prices" mapstructure:"prices"`
	Development DevelopmentConfig `yaml:"development" mapstructure:"development"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port" validate:"required|min:1|max:65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// PriceSourceConfig contiene la configuración de la API de precios de REE.
// MaxAttempts 1 desactiva los reintentos; sólo se reintentan errores de transporte.
type PriceSourceConfig struct {
	BaseURL     string        `yaml:"base_url" mapstructure:"base_url" validate:"required"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts" validate:"min:1|max:5"`
	RetryDelay  time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
	UserAgent   string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// StoreConfig contiene la configuración del almacén persistente de ajustes
type StoreConfig struct {
	Backend string       `yaml:"backend" mapstructure:"backend" validate:"required|in:file,memory,redis,sqlite"`
	File    FileConfig   `yaml:"file" mapstructure:"file"`
	Redis   RedisConfig  `yaml:"redis" mapstructure:"redis"`
	SQLite  SQLiteConfig `yaml:"sqlite" mapstructure:"sqlite"`
}

// FileConfig configura el backend de fichero JSON. Path vacío usa el directorio de configuración del usuario.
type FileConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Addr      string `yaml:"addr" mapstructure:"addr"`
	Password  string `yaml:"password" mapstructure:"password"`
	DB        int    `yaml:"db" mapstructure:"db" validate:"min:0|max:15"`
	KeyPrefix string `yaml:"key_prefix" mapstructure:"key_prefix"`
}

// SQLiteConfig configura el backend SQLite
type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// SchedulerConfig configura el precalentamiento diario de la caché
type SchedulerConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	Spec       string `yaml:"spec" mapstructure:"spec"`
	RunOnStart bool   `yaml:"run_on_start" mapstructure:"run_on_start"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int  `yaml:"capacity" mapstructure:"capacity"`
	RefillRate int  `yaml:"refill_rate" mapstructure:"refill_rate"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"required|in:debug,info,warn,error"`
	Format string `yaml:"format" mapstructure:"format" validate:"required|in:json,text"`
}

// PricesConfig define la zona horaria con la que se decide qué es "hoy"
type PricesConfig struct {
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// DevelopmentConfig contiene configuraciones para desarrollo y testing
type DevelopmentConfig struct {
	MockMode  bool `yaml:"mock_mode" mapstructure:"mock_mode"`
	DebugMode bool `yaml:"debug_mode" mapstructure:"debug_mode"`
}

// Location resuelve la zona horaria configurada. Vacío o "Local" es la zona del sistema.
func (c PricesConfig) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		PriceSource: PriceSourceConfig{
			BaseURL:     "https://apidatos.ree.es/en/datos/mercados/precios-mercados-tiempo-real",
			Timeout:     20 * time.Second,
			MaxAttempts: 1,
			RetryDelay:  500 * time.Millisecond,
			UserAgent:   "energy-es/1.0",
		},
		Store: StoreConfig{
			Backend: "file",
			Redis: RedisConfig{
				Addr:      "localhost:6379",
				KeyPrefix: "energy_es:",
			},
			SQLite: SQLiteConfig{
				Path: "energy_es.db",
			},
		},
		Scheduler: SchedulerConfig{
			Enabled:    true,
			Spec:       "0 5 0 * * *",
			RunOnStart: true,
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Capacity:   60,
			RefillRate: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Prices: PricesConfig{
			Timezone: "Local",
		},
	}
}
