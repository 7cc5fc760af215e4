package settings

import (
	"context"
	"energy-es/internal/domain/interfaces"
	"sync"
)

// MemoryStore implementa SettingsStore en memoria local. No sobrevive al proceso.
type MemoryStore struct {
	items map[string]string
	mu    sync.RWMutex
}

// NewMemoryStore crea un almacén en memoria vacío
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]string),
	}
}

// Get obtiene un valor del almacén
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, exists := s.items[key]
	if !exists {
		return "", interfaces.ErrKeyNotFound
	}
	return value, nil
}

// Set almacena un valor
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

// SetMany escribe todas las entradas bajo el mismo lock
func (s *MemoryStore) SetMany(ctx context.Context, entries map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range entries {
		s.items[key] = value
	}
	return nil
}

// Size retorna el número de claves (método auxiliar para tests)
func (s *MemoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Close no hace nada en memoria
func (s *MemoryStore) Close() error {
	return nil
}
