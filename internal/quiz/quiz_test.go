// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/storytime/internal/content"
)

func sampleStory() *content.Story {
	return &content.Story{
		ID:          "tortoise-and-hare",
		Title:       "The Tortoise and the Hare",
		MoralLesson: "Slow and steady wins the race.",
		AgeGroup:    "4-8 years",
		Category:    "Classic Fables",
		ReadingTime: "5 minutes",
	}
}

func TestQuestions(t *testing.T) {
	questions := Questions(sampleStory())
	require.Len(t, questions, QuestionCount)

	assert.Equal(t, `What is the main lesson of "The Tortoise and the Hare"?`, questions[0].Prompt)
	assert.Equal(t, "Slow and steady wins the race.", questions[0].Options[questions[0].Correct])
	assert.Equal(t, "4-8 years", questions[1].Options[questions[1].Correct])
	assert.Equal(t, "Classic Fables", questions[2].Options[questions[2].Correct])
	assert.Equal(t, "5 minutes", questions[3].Options[questions[3].Correct])
	assert.Equal(t, `Yes! "The Tortoise and the Hare" is a Classic Fables story.`, questions[2].Explanation)

	for _, question := range questions {
		assert.Len(t, question.Options, 4)
	}
}

func TestQuestions_TitleWithQuotes(t *testing.T) {
	story := sampleStory()
	story.Title = `The "Brave" Mouse`

	questions := Questions(story)

	assert.Equal(t, `What is the main lesson of "The "Brave" Mouse"?`, questions[0].Prompt)
	assert.Equal(t, `What category does "The "Brave" Mouse" belong to?`, questions[2].Prompt)
	assert.Equal(t, `How long does it take to read "The "Brave" Mouse"?`, questions[3].Prompt)
	for _, question := range questions {
		assert.NotContains(t, question.Prompt, `\`)
		assert.NotContains(t, question.Explanation, `\`)
	}
}

func TestQuiz_LessonAnswerScoresAndLocks(t *testing.T) {
	quiz := New(sampleStory())

	changed, err := quiz.SelectAnswer(0)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, quiz.Revealed)
	assert.Equal(t, 1, quiz.Score)
	assert.True(t, quiz.AnsweredCorrectly())

	changed, err = quiz.SelectAnswer(2)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, *quiz.Selected)
	assert.Equal(t, 1, quiz.Score)
}

func TestQuiz_ScoreNeverExceedsQuestionsAnswered(t *testing.T) {
	// Every combination of answers over the four questions.
	for mask := 0; mask < 256; mask++ {
		quiz := New(sampleStory())
		for index := 0; index < QuestionCount; index++ {
			option := (mask >> (2 * index)) & 3
			_, err := quiz.SelectAnswer(option)
			require.NoError(t, err)
			_, _ = quiz.SelectAnswer((option + 1) % 4)

			assert.LessOrEqual(t, quiz.Score, index+1)
			require.NoError(t, quiz.Advance())
		}
		assert.True(t, quiz.Completed)
		assert.GreaterOrEqual(t, quiz.Score, 0)
		assert.LessOrEqual(t, quiz.Score, QuestionCount)
	}
}

func TestQuiz_Advance(t *testing.T) {
	quiz := New(sampleStory())

	assert.ErrorIs(t, quiz.Advance(), ErrNotRevealed)
	assert.Equal(t, 0, quiz.Index)

	for index := 0; index < QuestionCount; index++ {
		_, err := quiz.SelectAnswer(quiz.Current().Correct)
		require.NoError(t, err)
		require.NoError(t, quiz.Advance())
		assert.Nil(t, quiz.Selected)
		assert.False(t, quiz.Revealed)
	}

	assert.True(t, quiz.Completed)
	assert.Nil(t, quiz.Current())
	assert.Equal(t, QuestionCount, quiz.Score)
	assert.Equal(t, "Perfect! You understood the story completely! 🏆", quiz.Message())

	assert.ErrorIs(t, quiz.Advance(), ErrCompleted)
	_, err := quiz.SelectAnswer(0)
	assert.ErrorIs(t, err, ErrCompleted)
}

func TestQuiz_SelectOutOfRange(t *testing.T) {
	quiz := New(sampleStory())

	for _, option := range []int{-1, 4} {
		changed, err := quiz.SelectAnswer(option)
		assert.ErrorIs(t, err, ErrOptionOutOfRange)
		assert.False(t, changed)
		assert.False(t, quiz.Revealed)
	}
}

func TestQuiz_Message(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{4, "Perfect! You understood the story completely! 🏆"},
		{3, "Excellent! You really paid attention! ⭐"},
		{2, "Good job! You got most of it right! 👍"},
		{1, "Nice try! Maybe read the story again! 💪"},
		{0, "Nice try! Maybe read the story again! 💪"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			quiz := New(sampleStory())
			quiz.Score = tt.score
			assert.Equal(t, tt.want, quiz.Message())
		})
	}
}

func TestQuiz_Reset(t *testing.T) {
	quiz := New(sampleStory())
	_, _ = quiz.SelectAnswer(0)
	_ = quiz.Advance()
	_, _ = quiz.SelectAnswer(1)

	quiz.Reset()

	assert.Equal(t, 0, quiz.Index)
	assert.Equal(t, 0, quiz.Score)
	assert.Nil(t, quiz.Selected)
	assert.False(t, quiz.Revealed)
	assert.False(t, quiz.Completed)
	assert.Len(t, quiz.Questions, QuestionCount)
}
