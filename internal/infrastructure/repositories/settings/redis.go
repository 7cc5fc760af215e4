package settings

import (
	"context"
	"energy-es/internal/domain/interfaces"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix agrupa las claves del servicio en una base compartida
const DefaultRedisKeyPrefix = "energy_es:"

// RedisStore implementa SettingsStore sobre Redis. Las claves no expiran.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore crea un almacén Redis con un cliente nuevo
func NewRedisStore(addr, password string, db int, prefix string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return NewRedisStoreWithClient(rdb, prefix)
}

// NewRedisStoreWithClient crea un almacén Redis con un cliente existente
func NewRedisStoreWithClient(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

// Get obtiene un valor de Redis
func (r *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", interfaces.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set almacena un valor sin TTL
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// SetMany escribe todas las entradas en una transacción MULTI/EXEC
func (r *RedisStore) SetMany(ctx context.Context, entries map[string]string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range entries {
			pipe.Set(ctx, r.key(key), value, 0)
		}
		return nil
	})
	return err
}

// Ping checks if Redis connection is alive
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}
