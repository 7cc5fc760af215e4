// Package app arma los componentes comunes a la API y a la CLI:
// configuración, logging, almacén de ajustes, fuente de precios y caché.
package app

import (
	"context"
	"energy-es/internal/application/services"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/config"
	"energy-es/internal/infrastructure/logging"
	"energy-es/internal/infrastructure/pricesource"
	"energy-es/internal/infrastructure/pricesource/ree"
	"energy-es/internal/infrastructure/repositories/settings"
	"fmt"
	"io"
	"time"
)

// ServiceName identifica al servicio en logs y métricas
const ServiceName = "energy-es"

// App agrupa las dependencias ya construidas
type App struct {
	Config   *config.Config
	Location *time.Location
	Store    interfaces.SettingsStore
	Source   interfaces.PriceSource
	Prices   *services.PriceManager
}

// LoadConfig carga y valida la configuración. path vacío busca config.yaml y config.<env>.yaml.
func LoadConfig(path string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.NewLoaderWithFile(path).Load()
	} else {
		cfg, err = config.NewLoader().LoadForEnvironment(config.GetEnvironment())
	}
	if err != nil {
		return nil, err
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// InitLogging inicializa los loggers globales con el nivel y formato configurados
func InitLogging(cfg config.LoggingConfig, version string, output io.Writer) error {
	loggerConfig := logging.NewConfig(ServiceName, version, config.GetEnvironment()).
		WithLevel(logging.LogLevelFromString(cfg.Level)).
		WithFormat(logging.LogFormatFromString(cfg.Format)).
		WithOutput(output)

	return logging.InitializeGlobalLoggers(loggerConfig)
}

// New construye el almacén, la fuente y la caché de precios. La caché carga lo persistido
// sin llamar a la API.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Prices.Location()
	if err != nil {
		return nil, err
	}

	store, err := settings.NewFactory().CreateStore(StoreConfig(cfg.Store))
	if err != nil {
		return nil, fmt.Errorf("failed to create settings store: %w", err)
	}

	source := NewPriceSource(cfg, loc)

	prices, err := services.NewPriceManager(ctx, source, store, services.WithLocation(loc))
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{
		Config:   cfg,
		Location: loc,
		Store:    store,
		Source:   source,
		Prices:   prices,
	}, nil
}

// Close libera el almacén
func (a *App) Close() error {
	return a.Store.Close()
}

// StoreConfig traduce la sección store de la configuración al formato de la factory
func StoreConfig(cfg config.StoreConfig) settings.Config {
	return settings.Config{
		Backend:        settings.BackendType(cfg.Backend),
		FilePath:       cfg.File.Path,
		RedisAddr:      cfg.Redis.Addr,
		RedisPassword:  cfg.Redis.Password,
		RedisDB:        cfg.Redis.DB,
		RedisKeyPrefix: cfg.Redis.KeyPrefix,
		SQLitePath:     cfg.SQLite.Path,
	}
}

// NewPriceSource retorna la fuente simulada en mock_mode y el cliente de REE en otro caso
func NewPriceSource(cfg *config.Config, loc *time.Location) interfaces.PriceSource {
	if cfg.Development.MockMode {
		logging.Warn(context.Background(), "Mock mode enabled, prices are simulated", nil)
		return pricesource.NewMockSource(loc)
	}
	return ree.NewRestClientWithConfig(cfg.PriceSource)
}
