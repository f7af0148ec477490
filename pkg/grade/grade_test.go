// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/storytime/pkg/grade"
)

var scale = grade.Scale{
	{MinPercent: 100, Message: "perfect"},
	{MinPercent: 75, Message: "excellent"},
	{MinPercent: 50, Message: "good"},
	{MinPercent: 0, Message: "try"},
}

func TestScale_Message(t *testing.T) {
	tests := []struct {
		name  string
		score int
		total int
		want  string
	}{
		{"all_correct", 4, 4, "perfect"},
		{"exact_threshold", 3, 4, "excellent"},
		{"half", 2, 4, "good"},
		{"just_below_half", 4, 9, "try"},
		{"none", 0, 4, "try"},
		{"empty_total", 0, 0, "try"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scale.Message(tt.score, tt.total))
		})
	}
}

func TestScale_Empty(t *testing.T) {
	assert.Equal(t, "", grade.Scale{}.Message(1, 1))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 75, grade.Percent(3, 4))
	assert.Equal(t, 66, grade.Percent(2, 3))
	assert.Equal(t, 0, grade.Percent(1, 0))
}
