// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package feedback collects star ratings and comments left by readers.
package feedback

import "time"

// # Field Names

const (
	FieldRating  = "rating"
	FieldMessage = "message"
	FieldEmail   = "email"
	FieldPage    = "page"
	FieldStory   = "story"
)

// # Limits

const (
	MinRating        = 1
	MaxRating        = 5
	MaxMessageLength = 2000
	MaxPageLength    = 500
	MaxStoryLength   = 300
)

// Entry is one submitted feedback form.
type Entry struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	Email     string    `json:"email,omitempty"`
	Page      string    `json:"page,omitempty"`
	Story     string    `json:"story,omitempty"`
	UserAgent string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingMessage is the reaction shown next to the selected star count.
func RatingMessage(rating int) string {
	switch rating {
	case 1:
		return "😔 We'll try to do better!"
	case 2:
		return "😐 Thanks for the feedback!"
	case 3:
		return "🙂 Glad you enjoyed it!"
	case 4:
		return "😊 So happy you liked it!"
	case 5:
		return "🤩 Amazing! You loved it!"
	}
	return ""
}
