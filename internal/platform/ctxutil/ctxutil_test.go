// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/storytime/internal/platform/ctxutil"
)

func TestRequestID(t *testing.T) {
	assert.Empty(t, ctxutil.GetRequestID(context.Background()))

	ctx := ctxutil.WithRequestID(context.Background(), "0192c7e4-read-aloud")
	assert.Equal(t, "0192c7e4-read-aloud", ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "0192c7e4-replaced")
	assert.Equal(t, "0192c7e4-replaced", ctxutil.GetRequestID(ctx))
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name   string
		logger *slog.Logger
		stored bool
	}{
		{"request logger", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), true},
		{"nil logger", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ctxutil.GetLogger(ctxutil.WithLogger(context.Background(), tt.logger))
			if tt.stored {
				assert.Same(t, tt.logger, got)
			} else {
				assert.Same(t, slog.Default(), got)
			}
		})
	}

	assert.Same(t, slog.Default(), ctxutil.GetLogger(context.Background()))
}
