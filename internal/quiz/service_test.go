// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package quiz_test

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
	"github.com/taibuivan/storytime/internal/quiz"
)

func newService(t *testing.T) *quiz.Service {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repository, err := content.NewStaticRepository(logger)
	require.NoError(t, err)

	codec, err := session.NewCodec("test-secret", "storytime", time.Hour)
	require.NoError(t, err)

	return quiz.NewService(content.NewService(repository, logger), codec, logger)
}

func code(err error) string {
	if appError := apperr.As(err); appError != nil {
		return appError.Code
	}
	return ""
}

func TestService_FullRound(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	view, err := service.Start(ctx, "tortoise-and-hare")
	require.NoError(t, err)
	require.NotNil(t, view.Question)
	assert.Equal(t, 1, view.Question.Number)
	assert.Nil(t, view.Question.Correct, "answer hidden until revealed")
	assert.Empty(t, view.Question.Explanation)

	_, err = service.Advance(ctx, view.Token)
	assert.Equal(t, "CONFLICT", code(err))

	view, err = service.Answer(ctx, view.Token, 0)
	require.NoError(t, err)
	require.NotNil(t, view.Question.IsCorrect)
	assert.True(t, *view.Question.IsCorrect)
	assert.Equal(t, "Correct!", view.Question.Result)
	assert.Contains(t, view.Question.Explanation, "Slow and steady wins the race")
	assert.Equal(t, 1, view.Score)

	locked, err := service.Answer(ctx, view.Token, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, *locked.Question.Selected)
	assert.Equal(t, 1, locked.Score)

	wrong := []int{0, 0, 0}
	for _, option := range wrong {
		view, err = service.Advance(ctx, view.Token)
		require.NoError(t, err)
		view, err = service.Answer(ctx, view.Token, option)
		require.NoError(t, err)
		assert.Equal(t, "Not quite right!", view.Question.Result)
	}

	view, err = service.Advance(ctx, view.Token)
	require.NoError(t, err)
	assert.True(t, view.Completed)
	assert.Nil(t, view.Question)
	assert.Equal(t, 1, view.Score)
	assert.Equal(t, 25, view.Percent)
	assert.Equal(t, "Nice try! Maybe read the story again! 💪", view.Message)

	view, err = service.Reset(ctx, view.Token)
	require.NoError(t, err)
	assert.False(t, view.Completed)
	assert.Equal(t, 0, view.Score)
	assert.Equal(t, 1, view.Question.Number)
}

func TestService_Errors(t *testing.T) {
	service := newService(t)
	ctx := context.Background()

	_, err := service.Start(ctx, "missing-story")
	assert.Equal(t, "NOT_FOUND", code(err))

	_, err = service.Answer(ctx, "garbage", 0)
	assert.Equal(t, "INVALID_SESSION", code(err))

	view, err := service.Start(ctx, "three-little-pigs")
	require.NoError(t, err)
	_, err = service.Answer(ctx, view.Token, 7)
	assert.Equal(t, "VALIDATION_ERROR", code(err))
}

func post(t *testing.T, router http.Handler, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded map[string]any
	_ = json.Unmarshal(recorder.Body.Bytes(), &decoded)
	return recorder, decoded
}

func TestHandler_Routes(t *testing.T) {
	router := chi.NewRouter()
	router.Mount("/quizzes", quiz.NewHandler(newService(t)).Routes())

	recorder, body := post(t, router, "/quizzes/ant-and-grasshopper", map[string]any{})
	require.Equal(t, http.StatusCreated, recorder.Code)
	data := body["data"].(map[string]any)
	token := data["token"].(string)

	recorder, _ = post(t, router, "/quizzes/answer", map[string]any{"token": token})
	assert.Equal(t, http.StatusBadRequest, recorder.Code, "option is required")

	recorder, body = post(t, router, "/quizzes/answer", map[string]any{"token": token, "option": 0})
	require.Equal(t, http.StatusOK, recorder.Code)
	data = body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["score"])

	recorder, _ = post(t, router, "/quizzes/advance", map[string]any{"token": data["token"]})
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = post(t, router, "/quizzes/reset", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
