package settings

import (
	"context"
	"energy-es/internal/domain/interfaces"
	"energy-es/internal/infrastructure/logging"
	"energy-es/internal/infrastructure/metrics"
	"errors"
	"sort"
)

// InstrumentedStore envuelve cualquier SettingsStore con métricas y logs de errores
type InstrumentedStore struct {
	store   interfaces.SettingsStore
	backend string
}

// NewInstrumentedStore creates a new instrumented store wrapper
func NewInstrumentedStore(store interfaces.SettingsStore, backend string) *InstrumentedStore {
	return &InstrumentedStore{
		store:   store,
		backend: backend,
	}
}

// Backend retorna el nombre del backend envuelto
func (s *InstrumentedStore) Backend() string {
	return s.backend
}

// Unwrap retorna el almacén original
func (s *InstrumentedStore) Unwrap() interfaces.SettingsStore {
	return s.store
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.store.Get(ctx, key)

	switch {
	case err == nil:
		metrics.RecordStoreOperation(s.backend, "get", "hit")
	case errors.Is(err, interfaces.ErrKeyNotFound):
		metrics.RecordStoreOperation(s.backend, "get", "miss")
	default:
		metrics.RecordStoreOperation(s.backend, "get", "error")
		logging.Store().StoreError(ctx, logging.StoreOpGet, key, err)
	}

	return value, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key, value string) error {
	err := s.store.Set(ctx, key, value)
	if err != nil {
		metrics.RecordStoreOperation(s.backend, "set", "error")
		logging.Store().StoreError(ctx, logging.StoreOpSet, key, err)
		return err
	}

	metrics.RecordStoreOperation(s.backend, "set", "ok")
	logging.Store().Written(ctx, []string{key}, s.backend)
	return nil
}

func (s *InstrumentedStore) SetMany(ctx context.Context, entries map[string]string) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	err := s.store.SetMany(ctx, entries)
	if err != nil {
		metrics.RecordStoreOperation(s.backend, "set_many", "error")
		for _, key := range keys {
			logging.Store().StoreError(ctx, logging.StoreOpSetMany, key, err)
		}
		return err
	}

	metrics.RecordStoreOperation(s.backend, "set_many", "ok")
	logging.Store().Written(ctx, keys, s.backend)
	return nil
}

func (s *InstrumentedStore) Close() error {
	return s.store.Close()
}
