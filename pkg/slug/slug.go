// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slug derives URL ids for stories and series that arrive without one.

A CMS record whose slug field was never filled in is still reachable: its id
is derived from the title ("The Tortoise & the Hare" becomes
"the-tortoise-the-hare"), the same way the CMS itself would have generated it.
*/
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented letters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}))

// From returns the lowercase ASCII slug of title.
//
// Apostrophes vanish so "Zippy's Race" reads "zippys-race"; any other run of
// characters that is not an ASCII letter or digit becomes a single hyphen.
func From(title string) string {
	folded, _, err := transform.String(stripMarks, title)
	if err != nil {
		folded = title
	}

	var builder strings.Builder
	builder.Grow(len(folded))
	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		switch {
		case r == '\'' || r == '’':
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			pendingHyphen = false
			builder.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return builder.String()
}
