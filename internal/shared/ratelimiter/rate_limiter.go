package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// Limiter は、APIエンドポイントへのリクエスト頻度を制限するインターフェースです。
// keyはクライアントごとの識別子（通常はIPアドレス）です。
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// FixedWindow は、固定ウィンドウ方式でリクエスト頻度を制限します。
// Redisが利用できない環境向けのプロセス内実装です。
type FixedWindow struct {
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count     int
	lastReset time.Time
}

// NewFixedWindow は新しいFixedWindowのインスタンスを生成します。
func NewFixedWindow(limit int, interval time.Duration) *FixedWindow {
	return &FixedWindow{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow はキーのカウントを加算し、上限内であればtrueを返します。
// interval を過ぎたらカウントリセットします。
func (rl *FixedWindow) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	w.count++
	return w.count <= rl.limit, nil
}
