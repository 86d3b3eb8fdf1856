package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:"

// RedisSlidingWindow implements the sliding window over a Redis sorted
// set, so the limit holds across process restarts.
type RedisSlidingWindow struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRedisSlidingWindow creates a Redis-backed sliding-window limiter.
func NewRedisSlidingWindow(client *redis.Client, limit int, window time.Duration) *RedisSlidingWindow {
	return NewRedisSlidingWindowWithClock(client, limit, window, time.Now)
}

// NewRedisSlidingWindowWithClock creates a limiter with an injectable clock.
func NewRedisSlidingWindowWithClock(client *redis.Client, limit int, window time.Duration, now func() time.Time) *RedisSlidingWindow {
	return &RedisSlidingWindow{client: client, limit: limit, window: window, now: now}
}

func (l *RedisSlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	now := l.now()
	windowStart := now.Add(-l.window)
	redisKey := redisKeyPrefix + key

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit query: %w", err)
	}

	if countCmd.Val() >= int64(l.limit) {
		return false, nil
	}

	record := l.client.TxPipeline()
	record.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: uuid.NewString(),
	})
	record.Expire(ctx, redisKey, l.window)
	if _, err := record.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit record: %w", err)
	}
	return true, nil
}
