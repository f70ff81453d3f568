package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared across instances.
// The first hit in a window creates the key with a TTL; further hits
// only increment, so the window never slides.
type RedisLimiter struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisLimiter(rdb *redis.Client, prefix string) *RedisLimiter {
	return &RedisLimiter{
		rdb:    rdb,
		prefix: prefix,
	}
}

// Allow returns false once key has been hit more than limit times
// within the window. Fails open when Redis is unreachable so an
// infrastructure outage does not lock users out.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, err
	}

	if count == 1 {
		if err := l.rdb.Expire(ctx, redisKey, window).Err(); err != nil {
			return true, err
		}
	}

	return count <= int64(limit), nil
}

// Reset clears the counter, used after a successful login to stop
// penalizing the recovered account.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.rdb.Del(ctx, fmt.Sprintf("%s:%s", l.prefix, key)).Err()
}
