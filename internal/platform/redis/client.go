// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis connects the optional Redis instance.

Two stores live in it, both expiring: the read-through content cache under
"content:" and narration clips under "narration:clip:". Neither is a source
of truth, so a flushed or lost Redis only costs latency. When REDIS_URL is
unset the content source is queried directly and clips stay in process.
*/
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cached catalogue reads are small; clips are the largest values stored.
const (
	poolSize     = 8
	minIdleConns = 1
	dialTimeout  = 3 * time.Second
	ioTimeout    = time.Second
	pingTimeout  = 2 * time.Second
)

// NewClient dials redisURL (redis:// or rediss://) and fails unless the
// server answers a PING within the startup context.
func NewClient(ctx context.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.ClientName = "storytime"
	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)
	return client, nil
}

// Ping is the readiness check for the cache.
func Ping(ctx context.Context, client redis.Cmdable) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
