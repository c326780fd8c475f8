// Package ratelimiter は外部API呼び出しの頻度を制限するトークンバケットを提供します。
package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Limiter は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は interval あたり limit 回までの呼び出しを許可します。
// 複数のgoroutineから同時に使用できます。
type RateLimiter struct {
	l *rate.Limiter
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。
// バースト幅は limit と同じで、起動直後は limit 回まで待たずに通過します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{l: rate.NewLimiter(rate.Inf, 0)}
	}
	every := rate.Every(interval / time.Duration(limit))
	return &RateLimiter{l: rate.NewLimiter(every, limit)}
}

// Wait はトークンが得られるまで待機します。
// ctxがキャンセルされた場合、またはデッドラインまでにトークンが得られない場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := rl.l.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}
