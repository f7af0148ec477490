// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package narration

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrClipNotFound is returned for handles with no stored clip.
var ErrClipNotFound = errors.New("narration: clip not found")

// ClipStore keeps synthesized clips until they are fetched or expire.
type ClipStore interface {
	Put(ctx context.Context, handle string, clip []byte, ttl time.Duration) error
	Get(ctx context.Context, handle string) ([]byte, error)
	Delete(ctx context.Context, handle string) error
}

type memoryClip struct {
	data    []byte
	expires time.Time
}

// MemoryClipStore is the in-process [ClipStore] used when Redis is not configured.
type MemoryClipStore struct {
	mu    sync.Mutex
	clips map[string]memoryClip
	now   func() time.Time
}

// NewMemoryClipStore creates an empty store.
func NewMemoryClipStore() *MemoryClipStore {
	return &MemoryClipStore{clips: make(map[string]memoryClip), now: time.Now}
}

// Put stores clip under handle. Expired clips are swept on every write.
func (store *MemoryClipStore) Put(_ context.Context, handle string, clip []byte, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	now := store.now()
	for key, existing := range store.clips {
		if !now.Before(existing.expires) {
			delete(store.clips, key)
		}
	}

	store.clips[handle] = memoryClip{data: clip, expires: now.Add(ttl)}
	return nil
}

// Get returns the clip for handle.
func (store *MemoryClipStore) Get(_ context.Context, handle string) ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	clip, ok := store.clips[handle]
	if !ok || !store.now().Before(clip.expires) {
		return nil, ErrClipNotFound
	}
	return clip.data, nil
}

// Delete removes the clip for handle, if any.
func (store *MemoryClipStore) Delete(_ context.Context, handle string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.clips, handle)
	return nil
}
