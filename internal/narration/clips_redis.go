// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package narration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/storytime/internal/platform/constants"
)

// RedisClipStore shares clips between server instances.
type RedisClipStore struct {
	client redis.Cmdable
}

// NewRedisClipStore creates a clip store on client.
func NewRedisClipStore(client redis.Cmdable) *RedisClipStore {
	return &RedisClipStore{client: client}
}

func clipKey(handle string) string {
	return constants.RedisPrefixNarration + handle
}

// Put stores clip with an expiry of ttl.
func (store *RedisClipStore) Put(ctx context.Context, handle string, clip []byte, ttl time.Duration) error {
	if err := store.client.Set(ctx, clipKey(handle), clip, ttl).Err(); err != nil {
		return fmt.Errorf("narration: failed to store clip: %w", err)
	}
	return nil
}

// Get returns the clip for handle.
func (store *RedisClipStore) Get(ctx context.Context, handle string) ([]byte, error) {
	clip, err := store.client.Get(ctx, clipKey(handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrClipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("narration: failed to load clip: %w", err)
	}
	return clip, nil
}

// Delete removes the clip for handle.
func (store *RedisClipStore) Delete(ctx context.Context, handle string) error {
	return store.client.Del(ctx, clipKey(handle)).Err()
}
