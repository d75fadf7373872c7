package charts

import (
	"context"
	"encoding/json"
	"reports/src/schemas"
	"reports/src/utils"
	redis_utils "reports/src/utils/redis"
	"strconv"
	"time"
)

// KeyValueStore is the byte cache behind CachedRenderer. RedisHandler
// satisfies it.
type KeyValueStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MemoryStore keeps charts in process when Redis is disabled.
type MemoryStore struct {
	cache *utils.Cache[string, []byte]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: utils.NewCache[string, []byte]()}
}

func (m *MemoryStore) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := m.cache.Get(key)
	return value, ok, nil
}

func (m *MemoryStore) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.cache.Set(key, value, ttl)
	return nil
}

// CachedRenderer memoises chart images by report type, size and payload.
// Store failures are logged and never fail the render.
type CachedRenderer struct {
	Next  ChartRenderer
	Store KeyValueStore
	TTL   time.Duration
}

func NewCachedRenderer(next ChartRenderer, store KeyValueStore, ttl time.Duration) *CachedRenderer {
	return &CachedRenderer{Next: next, Store: store, TTL: ttl}
}

func (c *CachedRenderer) RenderChart(ctx context.Context, payload schemas.ReportPayload, reportType schemas.ReportType, width, height int) ([]byte, error) {
	logger := utils.LoggerFromContext(ctx).WithField("report_type", reportType)

	body, err := json.Marshal(payload)
	if err != nil {
		logger.WithError(err).Warn("chart cache key unavailable")
		return c.Next.RenderChart(ctx, payload, reportType, width, height)
	}
	key := "chart:" + redis_utils.GenerateUUID(string(reportType), strconv.Itoa(width), strconv.Itoa(height), string(body))

	if cached, ok, err := c.Store.GetBytes(ctx, key); err != nil {
		logger.WithError(err).Warn("chart cache read failed")
	} else if ok {
		logger.Debug("chart cache hit")
		return cached, nil
	}

	image, err := c.Next.RenderChart(ctx, payload, reportType, width, height)
	if err != nil {
		return nil, err
	}
	if err := c.Store.SetBytes(ctx, key, image, c.TTL); err != nil {
		logger.WithError(err).Warn("chart cache write failed")
	}
	return image, nil
}
