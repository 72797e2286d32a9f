package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis はテスト用のminiredisインスタンスとクライアントを起動します。
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLimiter_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit", func(t *testing.T) {
		_, client := setupTestRedis(t)
		rl := NewRedisLimiter(client, "rl:test", 3, time.Minute)

		for i := 0; i < 3; i++ {
			ok, err := rl.Allow(ctx, "1.2.3.4")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok {
				t.Fatalf("expected request %d to be allowed", i+1)
			}
		}

		ok, err := rl.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected the request over the limit to be denied")
		}
	})

	t.Run("keys and prefixes are independent", func(t *testing.T) {
		_, client := setupTestRedis(t)
		otp := NewRedisLimiter(client, "rl:otp", 1, time.Minute)
		auth := NewRedisLimiter(client, "rl:auth", 1, time.Minute)

		if ok, _ := otp.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatal("expected first request to be allowed")
		}
		if ok, _ := otp.Allow(ctx, "5.6.7.8"); !ok {
			t.Error("expected a different key to have its own counter")
		}
		// 同じIPでもプレフィックスが違えば別カウンタ
		if ok, _ := auth.Allow(ctx, "1.2.3.4"); !ok {
			t.Error("expected a different prefix to have its own counter")
		}
		if ok, _ := otp.Allow(ctx, "1.2.3.4"); ok {
			t.Error("expected the exhausted counter to stay denied")
		}
	})

	t.Run("counter expires after the interval", func(t *testing.T) {
		mr, client := setupTestRedis(t)
		rl := NewRedisLimiter(client, "rl:test", 1, time.Minute)

		if ok, _ := rl.Allow(ctx, "1.2.3.4"); !ok {
			t.Fatal("expected first request to be allowed")
		}
		if ok, _ := rl.Allow(ctx, "1.2.3.4"); ok {
			t.Fatal("expected second request to be denied")
		}

		// TTL経過をシミュレートする
		mr.FastForward(time.Minute + time.Second)

		if ok, _ := rl.Allow(ctx, "1.2.3.4"); !ok {
			t.Error("expected the counter to reset after expiry")
		}
	})

	t.Run("redis failure returns an error", func(t *testing.T) {
		mr, client := setupTestRedis(t)
		rl := NewRedisLimiter(client, "rl:test", 1, time.Minute)

		mr.Close()

		if _, err := rl.Allow(ctx, "1.2.3.4"); err == nil {
			t.Error("expected an error when redis is unreachable")
		}
	})
}
