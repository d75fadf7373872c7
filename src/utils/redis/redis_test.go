package redis_utils_test

import (
	"context"
	"net"
	"os"
	"reports/src/config"
	redis "reports/src/utils/redis"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUUID(t *testing.T) {
	a := redis.GenerateUUID("chart", "sales", "600", "300")
	b := redis.GenerateUUID("chart", "sales", "600", "300")
	c := redis.GenerateUUID("chart", "sales", "6003", "00")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c, "inputs are separated before hashing")

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), parsed.Version())
}

// TestRedisHandler needs a reachable server, e.g. REDIS_TEST_ADDR=localhost:6379.
func TestRedisHandler(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	ctx := context.Background()
	handler, err := redis.NewRedisHandler(ctx, config.RedisConfig{Host: host, Port: port})
	require.NoError(t, err)
	defer handler.Close()

	key := "reports_test_key"

	t.Run("bytes round trip", func(t *testing.T) {
		require.NoError(t, handler.SetBytes(ctx, key, []byte{0x89, 'P', 'N', 'G'}, 10*time.Second))
		got, ok, err := handler.GetBytes(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, got)
	})

	t.Run("json round trip", func(t *testing.T) {
		type sample struct{ Name string }
		require.NoError(t, handler.Set(ctx, key, sample{Name: "Budi"}, 10*time.Second))
		var got sample
		require.NoError(t, handler.Get(ctx, key, &got))
		assert.Equal(t, "Budi", got.Name)
	})

	t.Run("missing key", func(t *testing.T) {
		require.NoError(t, handler.Delete(ctx, key))
		_, ok, err := handler.GetBytes(ctx, key)
		require.NoError(t, err)
		assert.False(t, ok)

		exists, err := handler.Exists(ctx, key)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
