// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/storytime/internal/platform/database/schema"
	"github.com/taibuivan/storytime/internal/platform/dberr"
)

// PostgresRepository stores feedback in the feedback.entry table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed feedback store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts one entry.
func (repository *PostgresRepository) Create(ctx context.Context, entry *Entry) error {
	table := schema.FeedbackEntry
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`, table.Table, strings.Join(table.Columns(), ", "))

	_, err := repository.pool.Exec(ctx, query,
		entry.ID,
		entry.Rating,
		entry.Message,
		entry.Email,
		entry.Page,
		entry.Story,
		entry.UserAgent,
		entry.CreatedAt,
	)
	return dberr.Wrap(err, "create feedback")
}
