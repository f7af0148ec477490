// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package narration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taibuivan/storytime/internal/reading"
)

// gatedSynthesizer blocks each synthesis until release is closed or the
// job is cancelled.
type gatedSynthesizer struct {
	release chan struct{}
	started chan struct{}
	err     error
}

func newGated() *gatedSynthesizer {
	return &gatedSynthesizer{release: make(chan struct{}), started: make(chan struct{}, 8)}
}

func (synthesizer *gatedSynthesizer) Synthesize(ctx context.Context, text string, _ reading.Voice) ([]byte, error) {
	synthesizer.started <- struct{}{}
	select {
	case <-synthesizer.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if synthesizer.err != nil {
		return nil, synthesizer.err
	}
	return []byte("mp3:" + text), nil
}

func newTestService(synthesizer Synthesizer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(synthesizer, NewMemoryClipStore(), time.Minute, logger)
}

func waitFor(t *testing.T, service *Service, handle reading.Handle, want Status) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return service.Status(context.Background(), handle) == want
	}, time.Second, 5*time.Millisecond)
}

func TestService_SpeakThenReady(t *testing.T) {
	defer goleak.VerifyNone(t)

	synthesizer := newGated()
	service := newTestService(synthesizer)
	defer service.Close()
	ctx := context.Background()

	handle, err := service.Speak(ctx, "Once upon a time", reading.StoryVoice)
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	<-synthesizer.started
	assert.Equal(t, StatusPending, service.Status(ctx, handle))

	close(synthesizer.release)
	waitFor(t, service, handle, StatusReady)

	clip, err := service.Clip(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, "mp3:Once upon a time", string(clip))
}

func TestService_CancelStopsSynthesis(t *testing.T) {
	defer goleak.VerifyNone(t)

	synthesizer := newGated()
	service := newTestService(synthesizer)
	defer service.Close()
	ctx := context.Background()

	handle, err := service.Speak(ctx, "text", reading.StoryVoice)
	require.NoError(t, err)
	<-synthesizer.started

	require.NoError(t, service.Cancel(ctx, handle))
	assert.Equal(t, StatusUnknown, service.Status(ctx, handle))

	close(synthesizer.release)
	service.Close()
	assert.Equal(t, StatusUnknown, service.Status(ctx, handle), "a cancelled clip never becomes playable")
}

func TestService_CancelUnknownHandle(t *testing.T) {
	service := newTestService(newGated())
	defer service.Close()

	assert.NoError(t, service.Cancel(context.Background(), "missing"))
}

func TestService_FailureIsUnknown(t *testing.T) {
	defer goleak.VerifyNone(t)

	synthesizer := newGated()
	synthesizer.err = errors.New("quota exceeded")
	close(synthesizer.release)

	service := newTestService(synthesizer)
	defer service.Close()

	handle, err := service.Speak(context.Background(), "text", reading.StoryVoice)
	require.NoError(t, err)
	<-synthesizer.started

	waitFor(t, service, handle, StatusUnknown)
}

func TestService_CloseCancelsRunningJobs(t *testing.T) {
	defer goleak.VerifyNone(t)

	synthesizer := newGated()
	service := newTestService(synthesizer)

	for range 3 {
		_, err := service.Speak(context.Background(), "text", reading.StoryVoice)
		require.NoError(t, err)
	}
	for range 3 {
		<-synthesizer.started
	}

	service.Close()

	_, err := service.Speak(context.Background(), "late", reading.StoryVoice)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHandler_Clip(t *testing.T) {
	defer goleak.VerifyNone(t)

	synthesizer := newGated()
	service := newTestService(synthesizer)
	defer service.Close()

	router := chi.NewRouter()
	NewHandler(service).RegisterRoutes(router)

	get := func(handle reading.Handle) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/narration/"+string(handle), nil))
		return recorder
	}

	handle, err := service.Speak(context.Background(), "hello", reading.StoryVoice)
	require.NoError(t, err)
	<-synthesizer.started

	assert.Equal(t, http.StatusAccepted, get(handle).Code)
	assert.Equal(t, http.StatusNotFound, get("nope").Code)

	close(synthesizer.release)
	waitFor(t, service, handle, StatusReady)

	recorder := get(handle)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "audio/mpeg", recorder.Header().Get("Content-Type"))
	assert.Equal(t, "mp3:hello", recorder.Body.String())
}

func TestMemoryClipStore_Expiry(t *testing.T) {
	store := NewMemoryClipStore()
	current := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a", []byte("clip"), time.Minute))
	clip, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("clip"), clip)

	current = current.Add(time.Minute)
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrClipNotFound)

	require.NoError(t, store.Put(ctx, "b", []byte("x"), time.Minute))
	assert.NotContains(t, store.clips, "a", "expired clips are swept on write")

	require.NoError(t, store.Delete(ctx, "b"))
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrClipNotFound)
}

func TestSplitIntoChunks(t *testing.T) {
	assert.Empty(t, splitIntoChunks("", 10))
	assert.Equal(t, []string{"short"}, splitIntoChunks("short", 10))

	chunks := splitIntoChunks("the quick brown fox jumps", 10)
	assert.Equal(t, "the quick brown fox jumps", strings.Join(chunks, ""))
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 10)
	}
	assert.Equal(t, "the quick", chunks[0], "cuts at the last space")
}

func TestSplitIntoChunks_MultibyteStaysUnderByteLimit(t *testing.T) {
	text := strings.Repeat("é", 6000)

	chunks := splitIntoChunks(text, chunkLimit)

	require.Len(t, chunks, 3)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), chunkLimit)
		assert.True(t, utf8.ValidString(chunk), "cuts on rune boundaries")
	}
}

func TestPitch(t *testing.T) {
	assert.InDelta(t, 2.0, pitch(1.1), 1e-9)
	assert.InDelta(t, 0.0, pitch(1.0), 1e-9)
	assert.InDelta(t, 20.0, pitch(5), 1e-9)
	assert.InDelta(t, -20.0, pitch(-3), 1e-9)
}
