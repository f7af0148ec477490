// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/session"
	"github.com/taibuivan/storytime/internal/reading"
)

func newService(t *testing.T, narrator reading.Narrator) *reading.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repository, err := content.NewStaticRepository(logger)
	require.NoError(t, err)

	codec, err := session.NewCodec("test-secret", "storytime", time.Hour)
	require.NoError(t, err)

	return reading.NewService(content.NewService(repository, logger), narrator, codec, "/api/v1/narration/", logger)
}

func code(err error) string {
	if appError := apperr.As(err); appError != nil {
		return appError.Code
	}
	return ""
}

func TestService_StoryFlow(t *testing.T) {
	narrator := &fakeNarrator{}
	service := newService(t, narrator)
	ctx := context.Background()

	view, err := service.StartStory(ctx, "tortoise-and-hare")
	require.NoError(t, err)
	assert.Equal(t, 0, view.Section)
	assert.Equal(t, 3, view.Sections)
	assert.True(t, view.NarrationAvailable)
	assert.False(t, view.HasPrevious)
	require.NotNil(t, view.Current)

	view, err = service.Next(ctx, view.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Section)

	view, err = service.GoTo(ctx, view.Token, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Section)
	assert.False(t, view.HasNext)

	view, err = service.ToggleNarration(ctx, view.Token)
	require.NoError(t, err)
	assert.Equal(t, reading.NarrationSpeaking, view.Narration)
	assert.Equal(t, "/api/v1/narration/h1", view.AudioURL)
	require.Len(t, narrator.spoken, 1)
	assert.Contains(t, narrator.spoken[0], "Once upon a time")
	assert.Contains(t, narrator.spoken[0], "best of friends", "narrates every section, not the visible one")

	stale, err := service.Complete(ctx, view.Token, "h0")
	require.NoError(t, err)
	assert.Equal(t, reading.NarrationSpeaking, stale.Narration)

	done, err := service.Complete(ctx, view.Token, view.Handle)
	require.NoError(t, err)
	assert.Equal(t, reading.NarrationIdle, done.Narration)
	assert.Empty(t, done.AudioURL)
}

func TestService_WithoutNarrator(t *testing.T) {
	service := newService(t, nil)
	ctx := context.Background()

	view, err := service.StartStory(ctx, "tortoise-and-hare")
	require.NoError(t, err)
	assert.False(t, view.NarrationAvailable)

	view, err = service.ToggleNarration(ctx, view.Token)
	require.NoError(t, err)
	assert.Equal(t, reading.NarrationIdle, view.Narration)
}

func TestService_Chapters(t *testing.T) {
	service := newService(t, nil)
	ctx := context.Background()

	view, err := service.StartChapter(ctx, "magic-forest-adventures", "chapter-2")
	require.NoError(t, err)
	require.NotNil(t, view.PreviousChapter)
	assert.Equal(t, "chapter-1", view.PreviousChapter.ID)
	assert.Equal(t, "chapter-3", view.NextChapter.ID)

	_, err = service.StartChapter(ctx, "magic-forest-adventures", "chapter-4")
	assert.Equal(t, "CONFLICT", code(err))

	_, err = service.StartChapter(ctx, "magic-forest-adventures", "chapter-404")
	assert.Equal(t, "NOT_FOUND", code(err))
}

func TestService_RejectsBadTokens(t *testing.T) {
	service := newService(t, nil)

	_, err := service.Next(context.Background(), "not-a-token")
	assert.Equal(t, "INVALID_SESSION", code(err))
}

func TestHandler_Routes(t *testing.T) {
	router := chi.NewRouter()
	router.Mount("/reading", reading.NewHandler(newService(t, &fakeNarrator{})).Routes())

	post := func(path string, body any) (*httptest.ResponseRecorder, map[string]any) {
		payload, _ := json.Marshal(body)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload)))
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
		return recorder, decoded
	}

	recorder, body := post("/reading/stories/tortoise-and-hare", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)
	token := body["data"].(map[string]any)["token"].(string)

	recorder, body = post("/reading/goto", map[string]any{"token": token, "section": 1})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["section"])

	recorder, body = post("/reading/narration", map[string]any{"token": token})
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "speaking", body["data"].(map[string]any)["narration"])

	recorder, body = post("/reading/next", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}
