// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration applies the content and feedback schema with golang-migrate.
//
// Migrations are read from an [fs.FS]: the set embedded in the binary by
// default, or a directory on disk when MIGRATION_PATH overrides it.
package migration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/taibuivan/storytime/data"
)

// Source resolves the migrations to apply. An empty path selects the
// embedded set.
func Source(path string) (fs.FS, error) {
	if path != "" {
		return os.DirFS(path), nil
	}
	embedded, err := fs.Sub(data.Migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migration: embedded migrations: %w", err)
	}
	return embedded, nil
}

// RunUp applies every pending up migration found at the root of migrations.
// A dirty database is reported, never forced.
func RunUp(dsn string, migrations fs.FS, logger *slog.Logger) error {
	driver, err := iofs.New(migrations, ".")
	if err != nil {
		return fmt.Errorf("migration: failed to read migrations: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", driver, pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceErr, databaseErr := migrator.Close()
		if err := errors.Join(sourceErr, databaseErr); err != nil {
			logger.Warn("migration_close_failed", slog.Any("error", err))
		}
	}()
	migrator.Log = migrateLogger{logger: logger}

	from, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to read version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: version %d is dirty, fix the schema and force the version by hand", from)
	}

	switch err := migrator.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration_up_to_date", slog.Uint64("version", uint64(from)))
		return nil
	case err != nil:
		return fmt.Errorf("migration: up failed: %w", err)
	}

	to, _, _ := migrator.Version()
	logger.Info("migration_applied",
		slog.Uint64("from_version", uint64(from)),
		slog.Uint64("to_version", uint64(to)),
	)
	return nil
}

// pgx5URL rewrites postgres:// and postgresql:// URLs to the scheme the
// pgx/v5 migrate driver registers. Other values pass through.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger sends golang-migrate's progress lines to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug("migration_progress", slog.String("detail", strings.TrimSpace(fmt.Sprintf(format, args...))))
}

func (l migrateLogger) Verbose() bool { return false }
