// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slice_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/storytime/pkg/slice"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, slice.Map([]string{"a", "b"}, strings.ToUpper))
	assert.NotNil(t, slice.Map[string, string](nil, strings.ToUpper))
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	assert.Equal(t, []int{2, 4}, slice.Filter([]int{1, 2, 3, 4}, even))
	assert.Equal(t, []int{}, slice.Filter([]int{1, 3}, even))
	assert.Equal(t, []int{}, slice.Filter(nil, even))
}
