// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storytime/internal/reading"
)

// fakeNarrator records calls and hands out sequential handles.
type fakeNarrator struct {
	mu        sync.Mutex
	spoken    []string
	voices    []reading.Voice
	cancelled []reading.Handle
	speakErr  error
	cancelErr error
}

func (narrator *fakeNarrator) Speak(_ context.Context, text string, voice reading.Voice) (reading.Handle, error) {
	narrator.mu.Lock()
	defer narrator.mu.Unlock()
	if narrator.speakErr != nil {
		return "", narrator.speakErr
	}
	narrator.spoken = append(narrator.spoken, text)
	narrator.voices = append(narrator.voices, voice)
	return reading.Handle(fmt.Sprintf("h%d", len(narrator.spoken))), nil
}

func (narrator *fakeNarrator) Cancel(_ context.Context, handle reading.Handle) error {
	narrator.mu.Lock()
	defer narrator.mu.Unlock()
	narrator.cancelled = append(narrator.cancelled, handle)
	return narrator.cancelErr
}

func TestSession_Navigation(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		action  func(*reading.Session) bool
		want    int
		changed bool
	}{
		{"next", 0, (*reading.Session).Next, 1, true},
		{"next_at_end_clamps", 2, (*reading.Session).Next, 2, false},
		{"previous_at_start_clamps", 0, (*reading.Session).Previous, 0, false},
		{"goto_same_is_noop", 1, func(s *reading.Session) bool { return s.GoTo(1) }, 1, false},
		{"goto_beyond_end", 0, func(s *reading.Session) bool { return s.GoTo(99) }, 2, true},
		{"goto_negative", 2, func(s *reading.Session) bool { return s.GoTo(-5) }, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := reading.NewSession(reading.Target{StoryID: "s"}, 3)
			state.Section = tt.start

			changed := tt.action(&state)

			assert.Equal(t, tt.want, state.Section)
			assert.Equal(t, tt.changed, changed)
		})
	}
}

func TestSession_EmptyContent(t *testing.T) {
	state := reading.NewSession(reading.Target{StoryID: "s"}, 0)

	assert.False(t, state.Next())
	assert.Equal(t, 0, state.Section)
	assert.False(t, state.HasNext())
	assert.False(t, state.HasPrevious())
}

func TestSession_ToggleNarration(t *testing.T) {
	narrator := &fakeNarrator{}
	state := reading.NewSession(reading.Target{StoryID: "s"}, 3)
	ctx := context.Background()

	require.NoError(t, state.ToggleNarration(ctx, narrator, "Once upon a time. The end."))
	assert.True(t, state.Speaking())
	assert.Equal(t, reading.Handle("h1"), state.Handle)
	assert.Equal(t, []string{"Once upon a time. The end."}, narrator.spoken)
	assert.Equal(t, reading.Voice{Rate: 0.8, Pitch: 1.1}, narrator.voices[0])

	require.NoError(t, state.ToggleNarration(ctx, narrator, "ignored"))
	assert.False(t, state.Speaking())
	assert.Empty(t, state.Handle)
	assert.Equal(t, []reading.Handle{"h1"}, narrator.cancelled)
}

func TestSession_CancelFailureStillStops(t *testing.T) {
	narrator := &fakeNarrator{cancelErr: errors.New("engine hung")}
	state := reading.NewSession(reading.Target{StoryID: "s"}, 1)
	ctx := context.Background()

	require.NoError(t, state.ToggleNarration(ctx, narrator, "text"))
	err := state.ToggleNarration(ctx, narrator, "text")

	assert.Error(t, err)
	assert.Equal(t, reading.NarrationIdle, state.Narration)
}

func TestSession_SpeakFailureStaysIdle(t *testing.T) {
	narrator := &fakeNarrator{speakErr: errors.New("quota")}
	state := reading.NewSession(reading.Target{StoryID: "s"}, 1)

	err := state.ToggleNarration(context.Background(), narrator, "text")

	assert.ErrorIs(t, err, reading.ErrNarrationUnavailable)
	assert.False(t, state.Speaking())
}

func TestSession_NilNarratorIsNoop(t *testing.T) {
	state := reading.NewSession(reading.Target{StoryID: "s"}, 1)

	assert.NoError(t, state.ToggleNarration(context.Background(), nil, "text"))
	assert.Equal(t, reading.NarrationIdle, state.Narration)
}

func TestSession_StopWithoutNarrator(t *testing.T) {
	state := reading.NewSession(reading.Target{StoryID: "s"}, 1)
	state.Narration = reading.NarrationSpeaking
	state.Handle = "h1"

	assert.NoError(t, state.ToggleNarration(context.Background(), nil, "text"))
	assert.False(t, state.Speaking())
	assert.Empty(t, state.Handle)
}

// A completion for an earlier narration never disturbs the current one.
func TestSession_StaleCompletionIgnored(t *testing.T) {
	narrator := &fakeNarrator{}
	state := reading.NewSession(reading.Target{StoryID: "s"}, 2)
	ctx := context.Background()

	require.NoError(t, state.ToggleNarration(ctx, narrator, "text")) // h1
	require.NoError(t, state.ToggleNarration(ctx, narrator, "text")) // cancel h1
	require.NoError(t, state.ToggleNarration(ctx, narrator, "text")) // h2

	assert.False(t, state.Finished("h1"))
	assert.True(t, state.Speaking())
	assert.Equal(t, reading.Handle("h2"), state.Handle)

	assert.True(t, state.Finished("h2"))
	assert.False(t, state.Speaking())

	assert.False(t, state.Finished("h2"), "late duplicate after idle")
	assert.False(t, state.Speaking())
}

func TestSession_NavigationKeepsNarration(t *testing.T) {
	narrator := &fakeNarrator{}
	state := reading.NewSession(reading.Target{StoryID: "s"}, 3)

	require.NoError(t, state.ToggleNarration(context.Background(), narrator, "text"))
	state.Next()
	state.GoTo(0)

	assert.True(t, state.Speaking())
	assert.Empty(t, narrator.cancelled)
}
