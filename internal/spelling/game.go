// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package spelling runs the vocabulary spelling game that follows a story.

The child types each vocabulary word of the story in turn. Correct and
incorrect answers are acknowledged for [FeedbackDelay] before the game moves
on, so the engine keeps a deadline instead of a timer and resolves it the next
time it is touched ([Game.Tick]).

State Machine:

	playing ──submit(match)────▶ correct   ──tick──▶ playing(next word) | completed
	playing ──submit(mismatch)─▶ incorrect ──tick──▶ playing(same word, input kept)
	playing ──skip─────────────▶ playing(next word) | completed
	any     ──reset────────────▶ playing(0, "", 0, 0, hint hidden)
*/
package spelling

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/pkg/grade"
)

// FeedbackDelay is how long correct/incorrect feedback stays on screen.
const FeedbackDelay = 2 * time.Second

var (
	// ErrNoWords is returned when the story has no vocabulary to spell.
	ErrNoWords = errors.New("spelling: story has no vocabulary words")

	// ErrFeedbackPending is returned for actions attempted while feedback is showing.
	ErrFeedbackPending = errors.New("spelling: feedback is still showing")

	// ErrCompleted is returned for actions attempted after the last word.
	ErrCompleted = errors.New("spelling: game is already completed")

	// ErrEmptyInput is returned when submitting a blank answer.
	ErrEmptyInput = errors.New("spelling: input is empty")
)

var scale = grade.Scale{
	{MinPercent: 100, Message: "Perfect! You're a spelling champion! 🏆"},
	{MinPercent: 80, Message: "Excellent work! You're doing great! ⭐"},
	{MinPercent: 60, Message: "Good job! Keep practicing! 👍"},
	{MinPercent: 0, Message: "Nice try! Practice makes perfect! 💪"},
}

// Phase is the coarse state of a game.
type Phase string

const (
	PhasePlaying   Phase = "playing"
	PhaseCorrect   Phase = "correct"
	PhaseIncorrect Phase = "incorrect"
	PhaseCompleted Phase = "completed"
)

// Transient reports whether the phase only lasts for [FeedbackDelay].
func (p Phase) Transient() bool {
	return p == PhaseCorrect || p == PhaseIncorrect
}

// # Engine State

// Game is the complete state of one spelling game.
type Game struct {
	StoryID    string                     `json:"story_id"`
	StoryTitle string                     `json:"story_title"`
	Words      []content.VocabularyHelper `json:"words"`
	Index      int                        `json:"index"`
	Input      string                     `json:"input"`
	Attempts   int                        `json:"attempts"`
	Score      int                        `json:"score"`
	ShowHint   bool                       `json:"show_hint"`
	Phase      Phase                      `json:"phase"`

	// FeedbackUntil is when a transient phase resolves. Zero otherwise.
	FeedbackUntil time.Time `json:"feedback_until,omitzero"`
}

// New starts a game over the story's vocabulary.
func New(story *content.Story) (Game, error) {
	if len(story.Vocabulary) == 0 {
		return Game{}, ErrNoWords
	}

	words := make([]content.VocabularyHelper, len(story.Vocabulary))
	copy(words, story.Vocabulary)

	return Game{
		StoryID:    story.ID,
		StoryTitle: story.Title,
		Words:      words,
		Phase:      PhasePlaying,
	}, nil
}

// Total is the number of words.
func (g *Game) Total() int {
	return len(g.Words)
}

// Word returns the word being spelled. It is nil once completed.
func (g *Game) Word() *content.VocabularyHelper {
	if g.Phase == PhaseCompleted || g.Index < 0 || g.Index >= len(g.Words) {
		return nil
	}
	return &g.Words[g.Index]
}

// Tick resolves an expired transient phase. It reports whether anything changed.
func (g *Game) Tick(now time.Time) bool {
	if !g.Phase.Transient() || now.Before(g.FeedbackUntil) {
		return false
	}

	if g.Phase == PhaseCorrect {
		g.advance()
	} else {
		g.Phase = PhasePlaying
	}
	g.FeedbackUntil = time.Time{}
	return true
}

// SetInput replaces the typed answer.
func (g *Game) SetInput(input string) error {
	if err := g.ready(); err != nil {
		return err
	}
	g.Input = input
	return nil
}

/*
Submit checks the typed answer against the current word.

Description: Counts one attempt. The comparison trims the input and ignores
case. The verdict shows until now + [FeedbackDelay].

Returns:
  - bool: Whether the answer was correct
  - error: ErrEmptyInput, ErrFeedbackPending or ErrCompleted
*/
func (g *Game) Submit(now time.Time) (bool, error) {
	if err := g.ready(); err != nil {
		return false, err
	}
	if strings.TrimSpace(g.Input) == "" {
		return false, ErrEmptyInput
	}

	g.Attempts++
	g.FeedbackUntil = now.Add(FeedbackDelay)

	if !Matches(g.Input, g.Words[g.Index].Word) {
		g.Phase = PhaseIncorrect
		return false, nil
	}

	g.Score++
	g.Phase = PhaseCorrect
	return true, nil
}

// ToggleHint shows or hides the hint for the current word.
func (g *Game) ToggleHint() error {
	if err := g.ready(); err != nil {
		return err
	}
	g.ShowHint = !g.ShowHint
	return nil
}

// Skip moves past the current word without scoring it.
func (g *Game) Skip() error {
	if err := g.ready(); err != nil {
		return err
	}
	g.advance()
	return nil
}

// Reset restarts from the first word.
func (g *Game) Reset() {
	g.Index = 0
	g.Input = ""
	g.Attempts = 0
	g.Score = 0
	g.ShowHint = false
	g.Phase = PhasePlaying
	g.FeedbackUntil = time.Time{}
}

// Hint describes the current word without giving it away. Empty when hidden.
func (g *Game) Hint() string {
	word := g.Word()
	if word == nil || !g.ShowHint {
		return ""
	}
	first, count := Hint(word.Word)
	return fmt.Sprintf("The word starts with %q and has %d letters.", first, count)
}

// Feedback is the verdict shown during a transient phase.
func (g *Game) Feedback() string {
	switch g.Phase {
	case PhaseCorrect:
		return "Correct! Great job! 🎉"
	case PhaseIncorrect:
		return "Try again! You can do it! 💪"
	}
	return ""
}

// Message is the closing message for the current score.
func (g *Game) Message() string {
	return scale.Message(g.Score, g.Total())
}

// # Helpers

// Matches reports whether input spells word.
func Matches(input, word string) bool {
	return strings.ToLower(strings.TrimSpace(input)) == strings.ToLower(word)
}

// Hint returns the uppercase first letter of word and its length in runes.
func Hint(word string) (string, int) {
	first, _ := utf8.DecodeRuneInString(word)
	if first == utf8.RuneError {
		return "", 0
	}
	return string(unicode.ToUpper(first)), utf8.RuneCountInString(word)
}

func (g *Game) ready() error {
	switch {
	case g.Phase == PhaseCompleted:
		return ErrCompleted
	case g.Phase.Transient():
		return ErrFeedbackPending
	}
	return nil
}

func (g *Game) advance() {
	g.Input = ""
	g.ShowHint = false
	if g.Index+1 >= len(g.Words) {
		g.Phase = PhaseCompleted
		return
	}
	g.Index++
	g.Phase = PhasePlaying
}
