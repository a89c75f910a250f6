package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tendhq/tend/internal/insights/application/queries"
)

// DefaultSummaryTTL keeps summaries fresh enough for an interactive CLI
// while sparing the repositories on repeated reads.
const DefaultSummaryTTL = 2 * time.Minute

// RedisSummaryCache implements queries.SummaryCache on Redis. Every cache
// failure is treated as a miss; the summary is always recomputable.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisSummaryCache creates a Redis-backed summary cache.
// A zero ttl falls back to DefaultSummaryTTL.
func NewRedisSummaryCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisSummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisSummaryCache{client: client, ttl: ttl, logger: logger}
}

func summaryKey(ownerID uuid.UUID, period queries.Period) string {
	return fmt.Sprintf("tend:summary:%s:%s", ownerID, period)
}

// Get returns the cached summary, or (nil, false) on miss or failure.
func (c *RedisSummaryCache) Get(ctx context.Context, ownerID uuid.UUID, period queries.Period) (*queries.PeriodSummary, bool) {
	payload, err := c.client.Get(ctx, summaryKey(ownerID, period)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Debug("summary cache read failed", "error", err)
		return nil, false
	}

	var summary queries.PeriodSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		c.logger.Debug("summary cache entry corrupt", "error", err)
		return nil, false
	}
	return &summary, true
}

// Set stores the summary with the configured TTL. Failures are logged and
// swallowed.
func (c *RedisSummaryCache) Set(ctx context.Context, ownerID uuid.UUID, period queries.Period, summary *queries.PeriodSummary) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, summaryKey(ownerID, period), payload, c.ttl).Err(); err != nil {
		c.logger.Debug("summary cache write failed", "error", err)
	}
}
