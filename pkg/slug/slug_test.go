// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/storytime/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"The Tortoise and the Hare", "the-tortoise-and-the-hare"},
		{"The Tortoise & the Hare", "the-tortoise-the-hare"},
		{"Zippy's Big Race", "zippys-big-race"},
		{"Zippy’s Big Race", "zippys-big-race"},
		{"  Coming Soon...  ", "coming-soon"},
		{"Crème Brûlée Café", "creme-brulee-cafe"},
		{"Chapter 10: Blast Off!", "chapter-10-blast-off"},
		{"🚀🌙", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.title))
		})
	}
}
