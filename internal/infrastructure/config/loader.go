package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// NewLoaderWithFile crea un loader que lee un fichero concreto en vez de buscar config.yaml
func NewLoaderWithFile(path string) *Loader {
	l := NewLoader()
	l.configFile = path
	return l
}

// Load loads configuration from files and environment variables
func (l *Loader) Load() (*Config, error) {
	l.setupViper()

	if err := l.v.ReadInConfig(); err != nil {
		// Sin config.yaml se usan sólo defaults y env vars; un fichero explícito sí debe existir
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return l.unmarshal()
}

// LoadForEnvironment carga la configuración base y la mezcla con config.<environment>.yaml si existe
func (l *Loader) LoadForEnvironment(environment string) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if environment == "" || l.configFile != "" {
		return config, nil
	}

	l.v.SetConfigName(fmt.Sprintf("config.%s", environment))
	if err := l.v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to merge environment config: %w", err)
	}

	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	l.overrideWithEnvVars(config)
	normalize(config)

	return config, nil
}

// setupViper configures Viper to read files and env vars
func (l *Loader) setupViper() {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName("config")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath("./configs")
		l.v.AddConfigPath("../configs")
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("/etc/energy-es")
	}

	l.v.SetEnvPrefix("ENERGY_ES") // ENERGY_ES_SERVER_PORT
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	l.registerDefaults()
	l.bindEnvVars()
}

// registerDefaults registra cada clave en viper para que AutomaticEnv la resuelva en Unmarshal
func (l *Loader) registerDefaults() {
	d := GetDefaultConfig()

	defaults := map[string]interface{}{
		"server.port":               d.Server.Port,
		"server.read_timeout":       d.Server.ReadTimeout,
		"server.write_timeout":      d.Server.WriteTimeout,
		"server.shutdown_timeout":   d.Server.ShutdownTimeout,
		"price_source.base_url":     d.PriceSource.BaseURL,
		"price_source.timeout":      d.PriceSource.Timeout,
		"price_source.max_attempts": d.PriceSource.MaxAttempts,
		"price_source.retry_delay":  d.PriceSource.RetryDelay,
		"price_source.user_agent":   d.PriceSource.UserAgent,
		"store.backend":             d.Store.Backend,
		"store.file.path":           d.Store.File.Path,
		"store.redis.addr":          d.Store.Redis.Addr,
		"store.redis.password":      d.Store.Redis.Password,
		"store.redis.db":            d.Store.Redis.DB,
		"store.redis.key_prefix":    d.Store.Redis.KeyPrefix,
		"store.sqlite.path":         d.Store.SQLite.Path,
		"scheduler.enabled":         d.Scheduler.Enabled,
		"scheduler.spec":            d.Scheduler.Spec,
		"scheduler.run_on_start":    d.Scheduler.RunOnStart,
		"rate_limit.enabled":        d.RateLimit.Enabled,
		"rate_limit.capacity":       d.RateLimit.Capacity,
		"rate_limit.refill_rate":    d.RateLimit.RefillRate,
		"logging.level":             d.Logging.Level,
		"logging.format":            d.Logging.Format,
		"prices.timezone":           d.Prices.Timezone,
		"development.mock_mode":     d.Development.MockMode,
		"development.debug_mode":    d.Development.DebugMode,
	}

	for key, value := range defaults {
		l.v.SetDefault(key, value)
	}
}

// bindEnvVars maps short environment variables to configuration keys
func (l *Loader) bindEnvVars() {
	envMappings := map[string]string{
		"server.port":               "PORT",
		"store.backend":             "STORE_BACKEND",
		"store.file.path":           "SETTINGS_FILE",
		"store.redis.addr":          "REDIS_ADDR",
		"store.redis.password":      "REDIS_PASSWORD",
		"store.redis.db":            "REDIS_DB",
		"store.sqlite.path":         "SQLITE_PATH",
		"price_source.base_url":     "REE_BASE_URL",
		"price_source.timeout":      "REE_TIMEOUT",
		"price_source.max_attempts": "REE_MAX_ATTEMPTS",
		"scheduler.spec":            "WARMUP_CRON",
		"logging.level":             "LOG_LEVEL",
		"logging.format":            "LOG_FORMAT",
		"rate_limit.capacity":       "RATE_LIMIT_CAPACITY",
		"rate_limit.refill_rate":    "RATE_LIMIT_REFILL_RATE",
		"rate_limit.enabled":        "RATE_LIMIT_ENABLED",
		"prices.timezone":           "PRICES_TZ",
	}

	for configKey, envVar := range envMappings {
		// El prefijo ENERGY_ES_ sigue funcionando junto al nombre corto
		prefixed := "ENERGY_ES_" + strings.ToUpper(strings.ReplaceAll(configKey, ".", "_"))
		_ = l.v.BindEnv(configKey, prefixed, envVar)
	}
}

// overrideWithEnvVars maneja flags de desarrollo con valores "1"/"true"
func (l *Loader) overrideWithEnvVars(config *Config) {
	if isTruthy(os.Getenv("MOCK_MODE")) {
		config.Development.MockMode = true
	}
	if isTruthy(os.Getenv("DEBUG_MODE")) {
		config.Development.DebugMode = true
	}
}

func normalize(config *Config) {
	config.Store.Backend = strings.ToLower(strings.TrimSpace(config.Store.Backend))
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Development.DebugMode {
		config.Logging.Level = "debug"
	}
}

func isTruthy(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

// GetEnvironment determina el entorno actual desde ENV vars
func GetEnvironment() string {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = strings.ToLower(os.Getenv("ENVIRONMENT"))
	}
	if env == "" {
		env = "development"
	}
	return env
}
