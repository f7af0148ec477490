// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spelling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storytime/internal/content"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func storyWith(words ...string) *content.Story {
	story := &content.Story{ID: "safari", Title: "Safari"}
	for _, word := range words {
		story.Vocabulary = append(story.Vocabulary, content.VocabularyHelper{Word: word, Definition: "a " + word})
	}
	return story
}

func newGame(t *testing.T, words ...string) Game {
	t.Helper()
	game, err := New(storyWith(words...))
	require.NoError(t, err)
	return game
}

func TestNew_NoWords(t *testing.T) {
	_, err := New(storyWith())
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestMatches(t *testing.T) {
	tests := []struct {
		input string
		word  string
		want  bool
	}{
		{" Apple ", "apple", true},
		{"elephant", "Elephant", true},
		{"ELEPHANT\t", "elephant", true},
		{"elefant", "elephant", false},
		{"", "apple", false},
		{"apple pie", "apple", false},
	}

	for _, tt := range tests {
		t.Run(tt.input+"/"+tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.input, tt.word))
		})
	}
}

func TestGame_CorrectThenAdvanceAfterDelay(t *testing.T) {
	game := newGame(t, "Elephant", "Giraffe")
	require.NoError(t, game.SetInput("elephant"))

	correct, err := game.Submit(epoch)
	require.NoError(t, err)
	assert.True(t, correct)
	assert.Equal(t, PhaseCorrect, game.Phase)
	assert.Equal(t, 1, game.Score)
	assert.Equal(t, 1, game.Attempts)

	assert.False(t, game.Tick(epoch.Add(FeedbackDelay-time.Millisecond)))
	assert.Equal(t, PhaseCorrect, game.Phase)

	assert.True(t, game.Tick(epoch.Add(FeedbackDelay)))
	assert.Equal(t, PhasePlaying, game.Phase)
	assert.Equal(t, 1, game.Index)
	assert.Empty(t, game.Input)
	assert.False(t, game.ShowHint)
}

func TestGame_CorrectOnLastWordCompletes(t *testing.T) {
	game := newGame(t, "Elephant")
	require.NoError(t, game.SetInput("elephant"))
	_, err := game.Submit(epoch)
	require.NoError(t, err)

	game.Tick(epoch.Add(FeedbackDelay))

	assert.Equal(t, PhaseCompleted, game.Phase)
	assert.Equal(t, 1, game.Score)
	assert.Nil(t, game.Word())
	assert.Equal(t, "Perfect! You're a spelling champion! 🏆", game.Message())
}

func TestGame_IncorrectKeepsInput(t *testing.T) {
	game := newGame(t, "Giraffe")
	require.NoError(t, game.SetInput("jiraf"))

	correct, err := game.Submit(epoch)
	require.NoError(t, err)
	assert.False(t, correct)
	assert.Equal(t, PhaseIncorrect, game.Phase)
	assert.Equal(t, 0, game.Score)

	game.Tick(epoch.Add(FeedbackDelay))
	assert.Equal(t, PhasePlaying, game.Phase)
	assert.Equal(t, 0, game.Index)
	assert.Equal(t, "jiraf", game.Input)
	assert.True(t, game.FeedbackUntil.IsZero())
}

func TestGame_FeedbackBlocksActions(t *testing.T) {
	game := newGame(t, "Giraffe", "Zebra")
	require.NoError(t, game.SetInput("giraffe"))
	_, err := game.Submit(epoch)
	require.NoError(t, err)

	before := game
	assert.ErrorIs(t, game.SetInput("x"), ErrFeedbackPending)
	_, err = game.Submit(epoch)
	assert.ErrorIs(t, err, ErrFeedbackPending)
	assert.ErrorIs(t, game.ToggleHint(), ErrFeedbackPending)
	assert.ErrorIs(t, game.Skip(), ErrFeedbackPending)
	assert.Equal(t, before, game)

	game.Reset()
	assert.Equal(t, PhasePlaying, game.Phase)
	assert.Equal(t, 0, game.Score)
}

func TestGame_EmptyInput(t *testing.T) {
	game := newGame(t, "Zebra")
	require.NoError(t, game.SetInput("   "))

	_, err := game.Submit(epoch)
	assert.ErrorIs(t, err, ErrEmptyInput)
	assert.Equal(t, 0, game.Attempts)
	assert.Equal(t, PhasePlaying, game.Phase)
}

func TestGame_SkipAll(t *testing.T) {
	game := newGame(t, "Lion", "Tiger", "Bear")
	require.NoError(t, game.ToggleHint())

	for range 3 {
		require.NoError(t, game.Skip())
		assert.False(t, game.ShowHint)
	}

	assert.Equal(t, PhaseCompleted, game.Phase)
	assert.Equal(t, 0, game.Score)
	assert.Equal(t, 0, game.Attempts)
	assert.Equal(t, "Nice try! Practice makes perfect! 💪", game.Message())
	assert.ErrorIs(t, game.Skip(), ErrCompleted)
}

func TestGame_Hint(t *testing.T) {
	game := newGame(t, "bragging")
	assert.Empty(t, game.Hint())

	require.NoError(t, game.ToggleHint())
	assert.Equal(t, `The word starts with "B" and has 8 letters.`, game.Hint())

	first, count := Hint("éclair")
	assert.Equal(t, "É", first)
	assert.Equal(t, 6, count)
}

func TestGame_Message(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{5, "Perfect! You're a spelling champion! 🏆"},
		{4, "Excellent work! You're doing great! ⭐"},
		{3, "Good job! Keep practicing! 👍"},
		{2, "Nice try! Practice makes perfect! 💪"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			game := newGame(t, "a", "b", "c", "d", "e")
			game.Score = tt.score
			assert.Equal(t, tt.want, game.Message())
		})
	}
}

func TestGame_DoesNotShareStoryVocabulary(t *testing.T) {
	story := storyWith("Owl")
	game, err := New(story)
	require.NoError(t, err)

	game.Words[0].Word = "changed"
	assert.Equal(t, "Owl", story.Vocabulary[0].Word)
}
