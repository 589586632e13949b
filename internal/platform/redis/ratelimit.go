// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/comicshelf/internal/platform/constants"
)

// # Shared Rate Limiter

// WindowLimiter is a fixed-window request counter shared through Redis.
//
// Each client gets one counter per window; the counter expires with the
// window, so no cleanup is needed.
type WindowLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewWindowLimiter allows up to limit requests per client in each window.
func NewWindowLimiter(client *redis.Client, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

// Allow counts one request for key and reports whether it fits the window.
func (limiter *WindowLimiter) Allow(context stdctx.Context, key string) (bool, time.Duration, error) {
	now := limiter.now()
	counterKey, remaining := windowKey(key, now, limiter.window)

	pipe := limiter.client.TxPipeline()
	incr := pipe.Incr(context, counterKey)
	pipe.ExpireNX(context, counterKey, limiter.window)

	if _, err := pipe.Exec(context); err != nil {
		return false, 0, fmt.Errorf("redis: rate limit counter: %w", err)
	}

	if incr.Val() > limiter.limit {
		return false, remaining, nil
	}
	return true, 0, nil
}

// windowKey names the counter for key in the window containing now, and
// returns the time left until that window closes.
func windowKey(key string, now time.Time, window time.Duration) (string, time.Duration) {
	size := window.Milliseconds()
	if size <= 0 {
		size = 1
	}

	elapsed := now.UnixMilli()
	start := elapsed - elapsed%size
	remaining := time.Duration(start+size-elapsed) * time.Millisecond

	return constants.RedisPrefixRateLimit + key + ":" + strconv.FormatInt(start, 10), remaining
}
