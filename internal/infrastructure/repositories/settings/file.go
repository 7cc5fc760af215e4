package settings

import (
	"context"
	"energy-es/internal/domain/interfaces"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

const (
	appDirName       = "energy_es"
	settingsFileName = "settings.json"
)

// FileStore guarda todas las claves en un único objeto JSON en disco.
// Cada escritura reescribe el fichero completo vía fichero temporal + rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// DefaultFilePath retorna <UserConfigDir>/energy_es/settings.json
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, settingsFileName), nil
}

// NewFileStore crea el almacén en path. Con path vacío usa DefaultFilePath.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		defaultPath, err := DefaultFilePath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create settings dir: %w", err)
	}

	return &FileStore{path: path}, nil
}

// Path retorna la ruta del fichero de settings
func (s *FileStore) Path() string {
	return s.path
}

// Get obtiene un valor del fichero
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return "", err
	}

	value, exists := items[key]
	if !exists {
		return "", interfaces.ErrKeyNotFound
	}
	return value, nil
}

// Set almacena un valor
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

// SetMany mezcla las entradas con el contenido actual y reescribe el fichero una vez
func (s *FileStore) SetMany(ctx context.Context, entries map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read()
	if err != nil {
		return err
	}

	for key, value := range entries {
		items[key] = value
	}

	return s.write(items)
}

// Close no mantiene recursos abiertos
func (s *FileStore) Close() error {
	return nil
}

// read carga el objeto completo. Un fichero inexistente equivale a vacío.
func (s *FileStore) read() (map[string]string, error) {
	items := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if len(data) == 0 {
		return items, nil
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode settings file %s: %w", s.path, err)
	}
	return items, nil
}

func (s *FileStore) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), settingsFileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp settings file: %w", err)
	}
	tmpName := tmp.Name()

	// Si algo falla el fichero original queda intacto
	cleanup := func(cause error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("failed to write settings: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("failed to sync settings: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close settings: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}
	return nil
}
