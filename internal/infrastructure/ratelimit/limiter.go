package ratelimit

import (
	"context"
	"time"
)

// Limits caps requests per key in each window. Zero disables a window.
type Limits struct {
	PerMinute int
	PerHour   int
}

// Limiter counts requests per key across sliding windows.
type Limiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Used(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
