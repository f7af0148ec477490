// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package convert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/storytime/pkg/convert"
)

func TestIntOr(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"3", 3},
		{" 2 ", 2},
		{"-1", -1},
		{"", -7},
		{"two", -7},
		{"1.5", -7},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, convert.IntOr(tt.input, -7))
		})
	}
	assert.Equal(t, 0, convert.Int("five"))
}
