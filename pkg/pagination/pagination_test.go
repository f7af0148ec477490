// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/storytime/pkg/pagination"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"defaults", "", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"explicit", "?page=3&limit=5", pagination.Params{Page: 3, Limit: 5}},
		{"garbage", "?page=two&limit=lots", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"negative", "?page=-4&limit=0", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"clamped", "?limit=500", pagination.Params{Page: 1, Limit: pagination.MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/stories"+tt.query, nil)
			assert.Equal(t, tt.want, pagination.FromRequest(request))
		})
	}
}

func TestParams_Window(t *testing.T) {
	tests := []struct {
		params     pagination.Params
		length     int
		start, end int
	}{
		{pagination.Params{Page: 1, Limit: 2}, 5, 0, 2},
		{pagination.Params{Page: 3, Limit: 2}, 5, 4, 5},
		{pagination.Params{Page: 4, Limit: 2}, 5, 5, 5},
		{pagination.Params{Page: 1, Limit: 20}, 0, 0, 0},
	}

	for _, tt := range tests {
		start, end := tt.params.Window(tt.length)
		assert.Equal(t, tt.start, start, "%+v start", tt.params)
		assert.Equal(t, tt.end, end, "%+v end", tt.params)
	}
}

func TestMeta(t *testing.T) {
	first := pagination.NewMeta(1, 2, 5)
	assert.Equal(t, 3, first.TotalPages)
	assert.False(t, first.HasPrevious())
	assert.True(t, first.HasNext())

	last := pagination.NewMeta(3, 2, 5)
	assert.True(t, last.HasPrevious())
	assert.False(t, last.HasNext())

	empty := pagination.NewMeta(1, 20, 0)
	assert.Zero(t, empty.TotalPages)
	assert.False(t, empty.HasNext())
}
