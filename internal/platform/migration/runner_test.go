// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/storytime":   "pgx5://u:p@db:5432/storytime",
		"postgresql://u:p@db:5432/storytime": "pgx5://u:p@db:5432/storytime",
		"pgx5://u:p@db:5432/storytime":       "pgx5://u:p@db:5432/storytime",
		"host=db dbname=storytime":           "host=db dbname=storytime",
	}

	for in, want := range tests {
		assert.Equal(t, want, pgx5URL(in), in)
	}
}

func TestSource_Embedded(t *testing.T) {
	migrations, err := Source("")
	require.NoError(t, err)

	names, err := fs.Glob(migrations, "*.up.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"000001_create_content.up.sql",
		"000002_create_feedback.up.sql",
	}, names)
}

func TestSource_Directory(t *testing.T) {
	dir := t.TempDir()
	migrations, err := Source(dir)
	require.NoError(t, err)

	names, err := fs.Glob(migrations, "*.sql")
	require.NoError(t, err)
	assert.Empty(t, names)
}
