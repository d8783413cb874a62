// backend-go/internal/cache/series_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kisaan/demand-dashboard/backend-go/internal/config"
	"github.com/kisaan/demand-dashboard/backend-go/internal/domain"
)

const (
	seriesKeyPrefix    = "demand:series"
	seriesScanBatchLen = 100
)

// SeriesKey identifies one merged-series render. ReferenceDate is part of
// the key because the is-tomorrow highlight depends on it; a cached entry
// from yesterday must not survive midnight.
type SeriesKey struct {
	ProductID     string
	From          string
	To            string
	ReferenceDate string
	SelectedRuns  []string
}

// SeriesCache keeps reconciled demand series between renders. All
// implementations treat misses and backend failures as cheap: callers log
// and recompute.
type SeriesCache interface {
	Get(ctx context.Context, key SeriesKey) (*domain.DemandSeries, bool, error)
	Set(ctx context.Context, key SeriesKey, series *domain.DemandSeries) error
	InvalidateAll(ctx context.Context) error
}

type redisSeriesCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopSeriesCache struct{}

func NewSeriesCache(cfg config.CacheConfig) (SeriesCache, error) {
	if !cfg.Enabled {
		return &noopSeriesCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSeriesCache{client: client, ttl: ttl}, nil
}

func NewNoopSeriesCache() SeriesCache {
	return &noopSeriesCache{}
}

func (c *redisSeriesCache) Get(ctx context.Context, key SeriesKey) (*domain.DemandSeries, bool, error) {
	payload, err := c.client.Get(ctx, buildSeriesKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var series domain.DemandSeries
	if err := json.Unmarshal(payload, &series); err != nil {
		return nil, false, fmt.Errorf("decode demand series cache: %w", err)
	}
	return &series, true, nil
}

func (c *redisSeriesCache) Set(ctx context.Context, key SeriesKey, series *domain.DemandSeries) error {
	payload, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encode demand series cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSeriesKey(key), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisSeriesCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, seriesKeyPrefix, seriesScanBatchLen)
}

func (n *noopSeriesCache) Get(ctx context.Context, key SeriesKey) (*domain.DemandSeries, bool, error) {
	return nil, false, nil
}

func (n *noopSeriesCache) Set(ctx context.Context, key SeriesKey, series *domain.DemandSeries) error {
	return nil
}

func (n *noopSeriesCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSeriesKey(key SeriesKey) string {
	parts := []string{
		key.ProductID,
		key.From,
		key.To,
		key.ReferenceDate,
		strings.Join(key.SelectedRuns, ","),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return fmt.Sprintf("%s:%s", seriesKeyPrefix, hex.EncodeToString(sum[:]))
}
