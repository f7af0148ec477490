// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert reads numbers out of form values and query parameters.

Form fields arrive as strings and a malformed value is never worth an error
page: the interactive pages fall back to a value the domain already rejects
or ignores (an out-of-range option, an unrated feedback entry).
*/
package convert

import (
	"strconv"
	"strings"
)

// Int parses s as a decimal integer, or returns 0.
func Int(s string) int {
	return IntOr(s, 0)
}

// IntOr parses s as a decimal integer, or returns fallback when s is blank
// or malformed. Surrounding whitespace is ignored.
func IntOr(s string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return value
}
