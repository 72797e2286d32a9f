package ratelimiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter は、Redisの INCR + EXPIRE による固定ウィンドウ実装です。
// 複数プロセスで上限を共有できます。
type RedisLimiter struct {
	client   *redis.Client
	prefix   string
	limit    int
	interval time.Duration
}

// NewRedisLimiter は新しいRedisLimiterのインスタンスを生成します。
func NewRedisLimiter(client *redis.Client, prefix string, limit int, interval time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		prefix:   prefix,
		limit:    limit,
		interval: interval,
	}
}

// Allow はキーのカウンタを加算し、上限内であればtrueを返します。
// ウィンドウの先頭でカウンタにTTLを設定し、期限切れで自動リセットされます。
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rl.prefix + ":" + key

	n, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := rl.client.Expire(ctx, k, rl.interval).Err(); err != nil {
			return false, err
		}
	}

	return n <= int64(rl.limit), nil
}
