package settings

import (
	"context"
	"energy-es/internal/domain/interfaces"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract ejecuta el mismo conjunto de comprobaciones sobre cualquier backend
func storeContract(t *testing.T, newStore func(t *testing.T) interfaces.SettingsStore) {
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, "nope")
		assert.ErrorIs(t, err, interfaces.ErrKeyNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "a", "1"))

		got, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "1", got)
	})

	t.Run("overwrite", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "a", "1"))
		require.NoError(t, store.Set(ctx, "a", "2"))

		got, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "2", got)
	})

	t.Run("set many keeps other keys", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set(ctx, "other", "x"))
		require.NoError(t, store.SetMany(ctx, map[string]string{
			SpotPricesKey: "[1]",
			PVPCPricesKey: "[2]",
		}))

		for key, want := range map[string]string{"other": "x", SpotPricesKey: "[1]", PVPCPricesKey: "[2]"} {
			got, err := store.Get(ctx, key)
			require.NoError(t, err, key)
			assert.Equal(t, want, got, key)
		}
	})

	t.Run("concurrent writers", func(t *testing.T) {
		store := newStore(t)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, store.Set(ctx, fmt.Sprintf("key-%d", i), "v"))
			}(i)
		}
		wg.Wait()

		for i := 0; i < 10; i++ {
			_, err := store.Get(ctx, fmt.Sprintf("key-%d", i))
			assert.NoError(t, err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, func(t *testing.T) interfaces.SettingsStore {
		return NewMemoryStore()
	})
}

func TestFileStore(t *testing.T) {
	storeContract(t, func(t *testing.T) interfaces.SettingsStore {
		store, err := NewFileStore(filepath.Join(t.TempDir(), "nested", "settings.json"))
		require.NoError(t, err)
		return store
	})
}

func TestSQLiteStore(t *testing.T) {
	storeContract(t, func(t *testing.T) interfaces.SettingsStore {
		store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "settings.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	probe := NewRedisStore(addr, "", 15, "energy_es_test:")
	if err := probe.Ping(context.Background()); err != nil {
		_ = probe.Close()
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	_ = probe.Close()

	storeContract(t, func(t *testing.T) interfaces.SettingsStore {
		prefix := fmt.Sprintf("energy_es_test:%s:", t.Name())
		store := NewRedisStore(addr, "", 15, prefix)
		t.Cleanup(func() { _ = store.Close() })
		return store
	})
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	store := NewRedisStore("localhost:0", "", 0, DefaultRedisKeyPrefix)
	defer store.Close()

	assert.Equal(t, "energy_es:spot_market_prices", store.key(SpotPricesKey))
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.SetMany(ctx, map[string]string{SpotPricesKey: "[]"}))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	got, err := second.Get(ctx, SpotPricesKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", got)

	// No quedan ficheros temporales tras escribir
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Get(context.Background(), SpotPricesKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, interfaces.ErrKeyNotFound)

	// Una escritura fallida no sobrescribe el fichero original
	assert.Error(t, store.Set(context.Background(), SpotPricesKey, "[]"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.SetMany(ctx, map[string]string{"a": "b"}), context.Canceled)
}

func TestDefaultFilePath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(appDirName, settingsFileName), filepath.Join(filepath.Base(filepath.Dir(path)), filepath.Base(path)))
}
