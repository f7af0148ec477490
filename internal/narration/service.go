// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package narration synthesizes read-aloud audio for reading sessions.

Each [Service.Speak] call starts one goroutine that renders the text and
stores the clip under a fresh handle. The browser polls the clip URL until
it is ready, plays it and reports completion to the reading session.
[Service.Cancel] cancels the goroutine's context and drops the clip, so a
cancelled narration never becomes playable.
*/
package narration

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/storytime/internal/reading"
	"github.com/taibuivan/storytime/pkg/uuid"
)

// synthesisTimeout bounds one synthesis job.
const synthesisTimeout = 2 * time.Minute

// ErrClosed is returned by Speak after Close.
var ErrClosed = errors.New("narration: service is closed")

// Synthesizer renders text to an MP3 clip.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice reading.Voice) ([]byte, error)
}

// Status is the lifecycle of a clip.
type Status string

const (
	StatusPending Status = "pending"
	StatusReady   Status = "ready"
	StatusUnknown Status = "unknown"
)

type job struct {
	cancel context.CancelFunc
}

// # Service Layer

// Service implements [reading.Narrator].
type Service struct {
	synthesizer Synthesizer
	clips       ClipStore
	ttl         time.Duration
	logger      *slog.Logger

	mu     sync.Mutex
	jobs   map[reading.Handle]*job
	wg     sync.WaitGroup
	closed bool
}

/*
NewService constructs a narration [Service].

Parameters:
  - synthesizer: Synthesizer (Speech backend)
  - clips: ClipStore (Where finished clips wait for playback)
  - ttl: time.Duration (Clip retention)
  - logger: *slog.Logger
*/
func NewService(synthesizer Synthesizer, clips ClipStore, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		synthesizer: synthesizer,
		clips:       clips,
		ttl:         ttl,
		logger:      logger,
		jobs:        make(map[reading.Handle]*job),
	}
}

// Speak starts synthesizing text and returns its handle immediately.
func (service *Service) Speak(_ context.Context, text string, voice reading.Voice) (reading.Handle, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.closed {
		return "", ErrClosed
	}

	handle := reading.Handle(uuid.New())

	// The job outlives the request that started it.
	jobCtx, cancel := context.WithTimeout(context.Background(), synthesisTimeout)
	service.jobs[handle] = &job{cancel: cancel}

	service.wg.Add(1)
	go service.run(jobCtx, cancel, handle, text, voice)

	return handle, nil
}

// Cancel stops a narration and discards its clip. Unknown handles are ignored.
func (service *Service) Cancel(ctx context.Context, handle reading.Handle) error {
	service.mu.Lock()
	current, ok := service.jobs[handle]
	delete(service.jobs, handle)
	service.mu.Unlock()

	if ok {
		current.cancel()
	}
	return service.clips.Delete(ctx, string(handle))
}

// Status reports whether the clip for handle can be played. Failed and
// cancelled narrations are unknown.
func (service *Service) Status(ctx context.Context, handle reading.Handle) Status {
	service.mu.Lock()
	_, pending := service.jobs[handle]
	service.mu.Unlock()

	if pending {
		return StatusPending
	}

	if _, err := service.clips.Get(ctx, string(handle)); err == nil {
		return StatusReady
	}
	return StatusUnknown
}

// Clip returns the synthesized audio for handle.
func (service *Service) Clip(ctx context.Context, handle reading.Handle) ([]byte, error) {
	return service.clips.Get(ctx, string(handle))
}

// Close cancels every running job and waits for them to exit.
func (service *Service) Close() {
	service.mu.Lock()
	service.closed = true
	for handle, current := range service.jobs {
		current.cancel()
		delete(service.jobs, handle)
	}
	service.mu.Unlock()

	service.wg.Wait()
}

// # Internals

func (service *Service) run(ctx context.Context, cancel context.CancelFunc, handle reading.Handle, text string, voice reading.Voice) {
	defer service.wg.Done()
	defer cancel()

	logger := service.logger.With(slog.String("handle", string(handle)))

	clip, err := service.synthesizer.Synthesize(ctx, text, voice)
	if err == nil {
		err = service.store(ctx, handle, clip)
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	_, live := service.jobs[handle]
	delete(service.jobs, handle)

	switch {
	case !live:
		// Cancelled while running. Store may have raced the cancel.
		_ = service.clips.Delete(context.Background(), string(handle))
		logger.Debug("narration_cancelled")
	case err != nil:
		logger.Warn("narration_failed", slog.Any("error", err))
	default:
		logger.Info("narration_ready", slog.Int("bytes", len(clip)))
	}
}

func (service *Service) store(ctx context.Context, handle reading.Handle, clip []byte) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return service.clips.Put(ctx, string(handle), clip, service.ttl)
}
