// Package ratelimit throttles abusive session start/stop traffic with
// sliding windows.
package ratelimit

import "time"

// LimitConfig sets the per-window request budgets. A zero limit disables
// that window.
type LimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	Allow(key string, config LimitConfig) (bool, error)
	GetRemaining(key string, window time.Duration) (int64, error)
	Reset(key string) error
}
