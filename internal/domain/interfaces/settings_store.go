package interfaces

import (
	"context"
	"errors"
)

// ErrKeyNotFound la clave no existe en el almacén
var ErrKeyNotFound = errors.New("key not found")

// SettingsStore es un almacén clave-valor persistente
type SettingsStore interface {
	// Get retorna ErrKeyNotFound si la clave no existe
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetMany escribe todas las entradas en una sola operación
	SetMany(ctx context.Context, entries map[string]string) error
	Close() error
}
