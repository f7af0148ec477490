// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package quiz runs the four-question comprehension quiz that follows a story.

The questions are generated once from the story's metadata when the quiz
starts and then travel inside the session, so a story edited mid-quiz never
changes the options a child is looking at.

State Machine:

	playing(index, selected, revealed) ──select──▶ playing(index, i, true)
	playing(index, _, true)            ──advance─▶ playing(index+1, none, false) | completed(score)
	any                                ──reset───▶ playing(0, none, false)

Selecting again after the answer is revealed changes nothing.
*/
package quiz

import (
	"errors"
	"fmt"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/pkg/grade"
	"github.com/taibuivan/storytime/pkg/pointer"
)

// QuestionCount is the fixed length of every quiz.
const QuestionCount = 4

var (
	// ErrNotRevealed is returned by Advance before the current question is answered.
	ErrNotRevealed = errors.New("quiz: answer the question before moving on")

	// ErrCompleted is returned by SelectAnswer and Advance once the quiz is over.
	ErrCompleted = errors.New("quiz: quiz is already completed")

	// ErrOptionOutOfRange is returned for an option index the question does not have.
	ErrOptionOutOfRange = errors.New("quiz: option out of range")
)

// scale holds the closing messages, highest tier first.
var scale = grade.Scale{
	{MinPercent: 100, Message: "Perfect! You understood the story completely! 🏆"},
	{MinPercent: 75, Message: "Excellent! You really paid attention! ⭐"},
	{MinPercent: 50, Message: "Good job! You got most of it right! 👍"},
	{MinPercent: 0, Message: "Nice try! Maybe read the story again! 💪"},
}

// Question is one multiple-choice question.
type Question struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Questions builds the quiz for story.
func Questions(story *content.Story) []Question {
	return []Question{
		{
			Prompt:      fmt.Sprintf("What is the main lesson of \"%s\"?", story.Title),
			Options:     []string{story.MoralLesson, "Always be the fastest", "Never help others", "Give up when things are hard"},
			Correct:     0,
			Explanation: "That's right! The story teaches us: " + story.MoralLesson,
		},
		{
			Prompt:      "What age group is this story suitable for?",
			Options:     []string{"Adults only", story.AgeGroup, "Teenagers only", "No specific age"},
			Correct:     1,
			Explanation: fmt.Sprintf("Correct! This story is perfect for children aged %s.", story.AgeGroup),
		},
		{
			Prompt:      fmt.Sprintf("What category does \"%s\" belong to?", story.Title),
			Options:     []string{"Science Fiction", "Horror Stories", story.Category, "Mystery"},
			Correct:     2,
			Explanation: fmt.Sprintf("Yes! \"%s\" is a %s story.", story.Title, story.Category),
		},
		{
			Prompt:      fmt.Sprintf("How long does it take to read \"%s\"?", story.Title),
			Options:     []string{"1 hour", story.ReadingTime, "30 minutes", "2 hours"},
			Correct:     1,
			Explanation: fmt.Sprintf("That's right! This story takes about %s to read.", story.ReadingTime),
		},
	}
}

// # Engine State

// Quiz is the complete state of one quiz session.
type Quiz struct {
	StoryID    string     `json:"story_id"`
	StoryTitle string     `json:"story_title"`
	Questions  []Question `json:"questions"`
	Index      int        `json:"index"`
	Selected   *int       `json:"selected"`
	Revealed   bool       `json:"revealed"`
	Score      int        `json:"score"`
	Completed  bool       `json:"completed"`
}

// New starts a quiz on the first question.
func New(story *content.Story) Quiz {
	return Quiz{
		StoryID:    story.ID,
		StoryTitle: story.Title,
		Questions:  Questions(story),
	}
}

// Total is the number of questions.
func (q *Quiz) Total() int {
	return len(q.Questions)
}

// Current returns the question being shown. It is nil once completed.
func (q *Quiz) Current() *Question {
	if q.Completed || q.Index < 0 || q.Index >= len(q.Questions) {
		return nil
	}
	return &q.Questions[q.Index]
}

// AnsweredCorrectly reports whether the revealed answer was right.
func (q *Quiz) AnsweredCorrectly() bool {
	current := q.Current()
	return q.Revealed && current != nil && q.Selected != nil && *q.Selected == current.Correct
}

/*
SelectAnswer records option as the answer to the current question.

Description: The answer is revealed immediately and scored at most once.
After the reveal further selections are ignored.

Returns:
  - bool: Whether the state changed
  - error: ErrOptionOutOfRange or ErrCompleted
*/
func (q *Quiz) SelectAnswer(option int) (bool, error) {
	current := q.Current()
	if current == nil {
		return false, ErrCompleted
	}
	if q.Revealed {
		return false, nil
	}
	if option < 0 || option >= len(current.Options) {
		return false, ErrOptionOutOfRange
	}

	q.Selected = pointer.To(option)
	q.Revealed = true
	if option == current.Correct {
		q.Score++
	}
	return true, nil
}

// Advance moves to the next question, or completes the quiz after the last one.
func (q *Quiz) Advance() error {
	if q.Completed {
		return ErrCompleted
	}
	if !q.Revealed {
		return ErrNotRevealed
	}

	q.Selected = nil
	q.Revealed = false
	if q.Index+1 >= len(q.Questions) {
		q.Completed = true
		return nil
	}
	q.Index++
	return nil
}

// Reset starts over with the same questions.
func (q *Quiz) Reset() {
	q.Index = 0
	q.Selected = nil
	q.Revealed = false
	q.Score = 0
	q.Completed = false
}

// Message is the closing message for the current score.
func (q *Quiz) Message() string {
	return scale.Message(q.Score, q.Total())
}
