package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "ratelimit:"

// RateLimiter counts requests per key in fixed windows backed by the shared
// store, so limits survive restarts and hold across instances.
type RateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, max int64, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, max: max, window: window}
}

func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().Unix() / int64(l.window.Seconds())
	counterKey := fmt.Sprintf("%s%s:%d", rateLimitKeyPrefix, key, bucket)

	n, err := l.client.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := l.client.Expire(ctx, counterKey, l.window).Err(); err != nil {
			return false, err
		}
	}

	return n <= l.max, nil
}
