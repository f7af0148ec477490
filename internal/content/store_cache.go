// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/storytime/internal/platform/constants"
)

// # Redis Read-Through Cache

// CachedRepository wraps another [Repository] and keeps its answers in Redis
// for a fixed TTL.
//
// Only successful reads are cached. Not-found and upstream failures always
// reach the wrapped source, so a transient CMS outage is never pinned in
// the cache. A Redis failure degrades to an uncached read.
type CachedRepository struct {
	next   Repository
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedRepository decorates next with a Redis cache.
func NewCachedRepository(next Repository, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func storiesKey() string         { return constants.RedisPrefixContent + "stories" }
func storyKey(id string) string  { return constants.RedisPrefixContent + "story:" + id }
func seriesListKey() string      { return constants.RedisPrefixContent + "series" }
func seriesKey(id string) string { return constants.RedisPrefixContent + "series:" + id }

func (repository *CachedRepository) ListStories(ctx context.Context) ([]*Story, error) {
	return readThrough(ctx, repository, storiesKey(), repository.next.ListStories)
}

func (repository *CachedRepository) FindStory(ctx context.Context, id string) (*Story, error) {
	return readThrough(ctx, repository, storyKey(id), func(ctx context.Context) (*Story, error) {
		return repository.next.FindStory(ctx, id)
	})
}

func (repository *CachedRepository) ListSeries(ctx context.Context) ([]*Series, error) {
	return readThrough(ctx, repository, seriesListKey(), repository.next.ListSeries)
}

func (repository *CachedRepository) FindSeries(ctx context.Context, id string) (*Series, error) {
	return readThrough(ctx, repository, seriesKey(id), func(ctx context.Context) (*Series, error) {
		return repository.next.FindSeries(ctx, id)
	})
}

// Ping checks Redis and, when it has one, the wrapped source.
func (repository *CachedRepository) Ping(ctx context.Context) error {
	if err := repository.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("content cache: %w", err)
	}
	if pinger, ok := repository.next.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return nil
}

// Invalidate drops every cached content entry.
func (repository *CachedRepository) Invalidate(ctx context.Context) error {
	iterator := repository.client.Scan(ctx, 0, constants.RedisPrefixContent+"*", 100).Iterator()

	var keys []string
	for iterator.Next(ctx) {
		keys = append(keys, iterator.Val())
	}
	if err := iterator.Err(); err != nil {
		return fmt.Errorf("content cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return repository.client.Del(ctx, keys...).Err()
}

func readThrough[T any](ctx context.Context, repository *CachedRepository, key string, load func(context.Context) (T, error)) (T, error) {
	raw, err := repository.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if decodeErr := json.Unmarshal(raw, &cached); decodeErr == nil {
			return cached, nil
		}
		repository.logger.Warn("content_cache_corrupt", slog.String("key", key))
	case !errors.Is(err, redis.Nil):
		repository.logger.Warn("content_cache_unavailable", slog.String("key", key), slog.Any("error", err))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if encoded, encodeErr := json.Marshal(value); encodeErr == nil {
		if setErr := repository.client.Set(ctx, key, encoded, repository.ttl).Err(); setErr != nil {
			repository.logger.Warn("content_cache_write_failed", slog.String("key", key), slog.Any("error", setErr))
		}
	}

	return value, nil
}
