// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate checks request fields and reports every failure at once
// as a single VALIDATION_ERROR with per-field details.
//
//	validator := &validate.Validator{}
//	validator.Slug("story_id", body.StoryID).Range("rating", body.Rating, 1, 5)
//	if err := validator.Err(); err != nil {
//		return err
//	}
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/storytime/internal/platform/apperr"
)

// ErrInvalidJSON is returned when a request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates field failures. The zero value is ready to use; it
// is not safe for concurrent use.
type Validator struct {
	failures []apperr.FieldError
}

// Required fails when value is empty after trimming.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen fails when value has more than limit characters.
func (v *Validator) MaxLen(field, value string, limit int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > limit, fmt.Sprintf("Maximum %d characters", limit))
}

// Range fails when value lies outside [low, high].
func (v *Validator) Range(field string, value, low, high int) *Validator {
	return v.Custom(field, value < low || value > high, fmt.Sprintf("Must be between %d and %d", low, high))
}

// Email fails unless value parses as a single RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.Custom(field, err != nil, "Must be a valid email address")
}

// Slug fails unless value is a story or series id: lowercase ASCII letters
// and digits in hyphen-separated runs.
func (v *Validator) Slug(field, value string) *Validator {
	return v.Custom(field, !isSlug(value), "Must be a valid id (lowercase letters, digits and hyphens)")
}

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.failures = append(v.failures, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.failures) > 0
}

// Err returns the accumulated failures as one validation error, or nil.
func (v *Validator) Err() error {
	if len(v.failures) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.failures...)
}

func isSlug(value string) bool {
	if value == "" || value[0] == '-' || value[len(value)-1] == '-' {
		return false
	}
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-' && value[i-1] != '-':
		default:
			return false
		}
	}
	return true
}
