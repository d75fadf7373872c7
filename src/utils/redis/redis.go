package redis_utils

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"reports/src/config"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyNamespace seeds the name-based cache keys.
var keyNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// RedisHandler wraps the go-redis client used for the chart cache.
type RedisHandler struct {
	client *redis.Client
}

// NewRedisHandler connects and pings the configured server.
func NewRedisHandler(ctx context.Context, cfg config.RedisConfig) (*RedisHandler, error) {
	opts := &redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Database,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisHandler{client: client}, nil
}

// Set stores value as JSON.
func (r *RedisHandler) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to serialize value: %w", err)
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

// Get decodes the JSON stored under key into result.
func (r *RedisHandler) Get(ctx context.Context, key string, result interface{}) error {
	data, ok, err := r.GetBytes(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("key does not exist: %s", key)
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to deserialize value: %w", err)
	}
	return nil
}

// GetBytes returns the raw value. A missing key is not an error.
func (r *RedisHandler) GetBytes(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get key: %w", err)
	}
	return data, true, nil
}

func (r *RedisHandler) SetBytes(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisHandler) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisHandler) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return count > 0, nil
}

// GenerateUUID derives a deterministic UUIDv5 from the joined inputs.
func GenerateUUID(inputs ...string) string {
	return uuid.NewSHA1(keyNamespace, []byte(strings.Join(inputs, "\x1f"))).String()
}

func (r *RedisHandler) Close() error {
	return r.client.Close()
}
