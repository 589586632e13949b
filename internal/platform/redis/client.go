// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis holds the optional shared counter store.

When REDIS_URL is set, every API replica counts requests against the same
per-client window kept here. Without it the API falls back to an in-process
limiter and this package is never opened.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Pool and timeout values used when the URL does not set its own.
const (
	defaultPoolSize     = 10
	defaultMinIdleConns = 2
	defaultMaxIdleConns = 5

	defaultDialTimeout  = 3 * time.Second
	defaultReadTimeout  = 2 * time.Second
	defaultWriteTimeout = 2 * time.Second

	pingTimeout = 2 * time.Second
)

// Store is an open connection to the shared counter store.
type Store struct {
	client *redis.Client
	addr   string
	logger *slog.Logger
}

// Open connects to redisURL and pings it once before returning.
func Open(context stdctx.Context, redisURL string, logger *slog.Logger) (*Store, error) {
	options, err := clientOptions(redisURL)
	if err != nil {
		return nil, err
	}

	store := &Store{
		client: redis.NewClient(options),
		addr:   options.Addr,
		logger: logger,
	}

	if err := store.Ready(context); err != nil {
		_ = store.client.Close()
		return nil, err
	}

	logger.Info("redis_store_opened",
		slog.String("addr", store.addr),
		slog.Int("pool_size", options.PoolSize),
	)

	return store, nil
}

// clientOptions parses redisURL and fills in pool and timeout settings the
// URL leaves unset. Query parameters such as pool_size take precedence.
func clientOptions(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if options.PoolSize == 0 {
		options.PoolSize = defaultPoolSize
	}
	if options.MinIdleConns == 0 {
		options.MinIdleConns = defaultMinIdleConns
	}
	if options.MaxIdleConns == 0 {
		options.MaxIdleConns = max(defaultMaxIdleConns, options.MinIdleConns)
	}
	if options.DialTimeout == 0 {
		options.DialTimeout = defaultDialTimeout
	}
	if options.ReadTimeout == 0 {
		options.ReadTimeout = defaultReadTimeout
	}
	if options.WriteTimeout == 0 {
		options.WriteTimeout = defaultWriteTimeout
	}

	return options, nil
}

// Ready pings the store. It backs the /ready check.
func (store *Store) Ready(context stdctx.Context) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := store.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping %s: %w", store.addr, err)
	}
	return nil
}

// WindowLimiter returns a limiter allowing limit requests per client in each
// window, counted in this store.
func (store *Store) WindowLimiter(limit int, window time.Duration) *WindowLimiter {
	return NewWindowLimiter(store.client, limit, window)
}

// Close releases the connection pool.
func (store *Store) Close() error {
	store.logger.Info("redis_store_closing", slog.String("addr", store.addr))
	return store.client.Close()
}
