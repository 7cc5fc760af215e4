package settings

import (
	"context"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/logging"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// BackendType identifica la implementación del almacén
type BackendType string

const (
	BackendFile   BackendType = "file"
	BackendMemory BackendType = "memory"
	BackendRedis  BackendType = "redis"
	BackendSQLite BackendType = "sqlite"
)

// Config holds settings store configuration options
type Config struct {
	Backend        BackendType
	FilePath       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	SQLitePath     string
}

// Factory provides methods to create settings store instances
type Factory struct {
	pingTimeout time.Duration
}

// NewFactory creates a new settings store factory
func NewFactory() *Factory {
	return &Factory{pingTimeout: 5 * time.Second}
}

// CreateStore crea el backend configurado envuelto con métricas
func (f *Factory) CreateStore(config Config) (interfaces.SettingsStore, error) {
	ctx := context.Background()

	var (
		store interfaces.SettingsStore
		err   error
	)

	switch config.Backend {
	case BackendFile:
		var fileStore *FileStore
		fileStore, err = NewFileStore(config.FilePath)
		if err == nil {
			store = fileStore
			logging.Info(ctx, "Creating file settings store", logging.Fields{
				logging.FieldStoreBackend: string(BackendFile),
				"path":                    fileStore.Path(),
			})
		}

	case BackendMemory:
		logging.Info(ctx, "Creating memory settings store", logging.Fields{
			logging.FieldStoreBackend: string(BackendMemory),
		})
		store = NewMemoryStore()

	case BackendRedis:
		logging.Info(ctx, "Creating Redis settings store", logging.Fields{
			logging.FieldStoreBackend: string(BackendRedis),
			"addr":                    config.RedisAddr,
			"database":                config.RedisDB,
		})
		store, err = f.createRedisStore(config)

	case BackendSQLite:
		logging.Info(ctx, "Creating SQLite settings store", logging.Fields{
			logging.FieldStoreBackend: string(BackendSQLite),
			"path":                    config.SQLitePath,
		})
		store, err = NewSQLiteStore(config.SQLitePath)

	default:
		return nil, fmt.Errorf("unsupported store backend: %s", config.Backend)
	}

	if err != nil {
		return nil, err
	}

	return NewInstrumentedStore(store, string(config.Backend)), nil
}

// createRedisStore crea el cliente y comprueba la conexión
func (f *Factory) createRedisStore(config Config) (interfaces.SettingsStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), f.pingTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", config.RedisAddr, err)
	}

	logging.Info(context.Background(), "Redis connection established successfully", logging.Fields{
		"addr":     config.RedisAddr,
		"database": config.RedisDB,
	})

	prefix := config.RedisKeyPrefix
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return NewRedisStoreWithClient(rdb, prefix), nil
}
