// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/storytime/internal/platform/config"
)

// OpenOptions selects and configures the repository built by [Open].
type OpenOptions struct {
	// Source is one of the config.Source* names. Empty means static.
	Source string

	// CMS is used when Source is [config.SourceCMS].
	CMS CMSOptions

	// Pool is required when Source is [config.SourcePostgres].
	Pool *pgxpool.Pool

	// Cache, when set, wraps the source in a [CachedRepository].
	Cache    redis.Cmdable
	CacheTTL time.Duration
}

/*
Open builds the configured content [Repository].

Parameters:
  - options: OpenOptions
  - logger: *slog.Logger

Returns:
  - Repository: the source, wrapped by the Redis cache when one is given
  - error: unknown source or missing pool
*/
func Open(options OpenOptions, logger *slog.Logger) (Repository, error) {
	var repository Repository

	switch options.Source {
	case config.SourceStatic, "":
		static, err := NewStaticRepository(logger)
		if err != nil {
			return nil, err
		}
		repository = static
	case config.SourceCMS:
		repository = NewCMSRepository(options.CMS, logger)
	case config.SourcePostgres:
		if options.Pool == nil {
			return nil, fmt.Errorf("content: source %q needs a database pool", options.Source)
		}
		repository = NewPostgresRepository(options.Pool, logger)
	default:
		return nil, fmt.Errorf("content: unknown source %q", options.Source)
	}

	if options.Cache != nil {
		repository = NewCachedRepository(repository, options.Cache, options.CacheTTL, logger)
	}

	logger.Info("content_source_opened",
		slog.String("source", options.Source),
		slog.Bool("cached", options.Cache != nil),
	)
	return repository, nil
}
