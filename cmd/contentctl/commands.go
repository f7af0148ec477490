// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/config"
	"github.com/taibuivan/storytime/internal/platform/constants"
	"github.com/taibuivan/storytime/internal/platform/migration"
	pgstore "github.com/taibuivan/storytime/internal/platform/postgres"
	redisstore "github.com/taibuivan/storytime/internal/platform/redis"
	"github.com/taibuivan/storytime/internal/site"
)

// errIssuesFound makes validate and import exit non-zero once the issues are listed.
var errIssuesFound = errors.New("content audit found issues")

// options are the environment-backed settings shared by every command.
type options struct {
	Source        string        `env:"CONTENT_SOURCE" envDefault:"static"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	MigrationPath string        `env:"MIGRATION_PATH"`
	RedisURL      string        `env:"REDIS_URL"`
	BaseURL       string        `env:"SITE_BASE_URL"  envDefault:"https://modakstorytime.com"`
	Verbose       bool          `env:"DEBUG"`
	Timeout       time.Duration `env:"CONTENTCTL_TIMEOUT" envDefault:"2m"`

	CMSProjectID  string        `env:"CMS_PROJECT_ID"`
	CMSDataset    string        `env:"CMS_DATASET"     envDefault:"production"`
	CMSAPIVersion string        `env:"CMS_API_VERSION" envDefault:"2024-01-01"`
	CMSToken      string        `env:"CMS_TOKEN"`
	CMSBaseURL    string        `env:"CMS_BASE_URL"`
	CMSTimeout    time.Duration `env:"CMS_TIMEOUT"     envDefault:"10s"`
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "contentctl"))
}

func (o *options) cms() content.CMSOptions {
	cfg := config.Config{
		CMSProjectID:  o.CMSProjectID,
		CMSDataset:    o.CMSDataset,
		CMSAPIVersion: o.CMSAPIVersion,
		CMSBaseURL:    o.CMSBaseURL,
	}
	return content.CMSOptions{Endpoint: cfg.CMSEndpoint(), Token: o.CMSToken, Timeout: o.CMSTimeout}
}

// open builds the repository selected by --source. The returned cleanup
// closes the database pool when one was opened.
func (o *options) open(cmd *cobra.Command, logger *slog.Logger) (content.Repository, func(), error) {
	openOptions := content.OpenOptions{Source: o.Source, CMS: o.cms()}
	cleanup := func() {}

	if o.Source == config.SourcePostgres {
		if o.DatabaseURL == "" {
			return nil, cleanup, errors.New("--database-url is required for the postgres source")
		}
		pool, err := pgstore.NewPool(cmd.Context(), o.DatabaseURL, logger)
		if err != nil {
			return nil, cleanup, err
		}
		openOptions.Pool = pool
		cleanup = pool.Close
	}

	repository, err := content.Open(openOptions, logger)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return repository, cleanup, nil
}

func (o *options) migrate(logger *slog.Logger) error {
	migrations, err := migration.Source(o.MigrationPath)
	if err != nil {
		return err
	}
	return migration.RunUp(o.DatabaseURL, migrations, logger)
}

func withTimeout(cmd *cobra.Command, opts *options) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), opts.Timeout)
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	// The environment supplies the flag defaults, so flags always win.
	envErr := env.Parse(opts)

	root := &cobra.Command{
		Use:          "contentctl",
		Short:        "📚 Manage the Storytime content catalogue",
		Version:      constants.AppVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if envErr != nil {
				return fmt.Errorf("contentctl: failed to parse environment: %w", envErr)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.Source, "source", "s", opts.Source, "content source: static, cms or postgres ($CONTENT_SOURCE)")
	flags.StringVar(&opts.DatabaseURL, "database-url", opts.DatabaseURL, "PostgreSQL URL ($DATABASE_URL)")
	flags.StringVar(&opts.MigrationPath, "migrations", opts.MigrationPath, "migrations directory, embedded set when empty ($MIGRATION_PATH)")
	flags.StringVar(&opts.RedisURL, "redis-url", opts.RedisURL, "Redis URL whose content cache is flushed after import ($REDIS_URL)")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "log debug output to stderr")

	root.AddCommand(
		newValidateCommand(opts),
		newImportCommand(opts),
		newSitemapCommand(opts),
		newMigrateCommand(opts),
	)
	return root
}

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "🔍 Audit a content source",
		Long:  "Load every story and series from the selected source and report records that would be hidden from readers or render poorly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger(cmd)
			ctx, cancel := withTimeout(cmd, opts)
			defer cancel()

			repository, cleanup, err := opts.open(cmd, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			stories, err := repository.ListStories(ctx)
			if err != nil {
				return fmt.Errorf("list stories: %w", err)
			}
			series, err := repository.ListSeries(ctx)
			if err != nil {
				return fmt.Errorf("list series: %w", err)
			}

			out := cmd.OutOrStdout()
			issues := content.Audit(stories, series)
			for _, issue := range issues {
				fmt.Fprintln(out, "⚠️ ", issue)
			}
			fmt.Fprintf(out, "%d stories, %d series, %d issues\n", len(stories), len(series), len(issues))

			if len(issues) > 0 {
				return errIssuesFound
			}
			return nil
		},
	}
}

func newImportCommand(opts *options) *cobra.Command {
	var skipMigrate bool

	command := &cobra.Command{
		Use:   "import",
		Short: "📥 Copy the embedded catalogue into PostgreSQL",
		Long:  "Replace the PostgreSQL content mirror with the catalogue embedded in this binary, in one transaction. The Redis content cache is flushed afterwards when --redis-url is set.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.DatabaseURL == "" {
				return errors.New("--database-url is required")
			}
			logger := opts.logger(cmd)
			ctx, cancel := withTimeout(cmd, opts)
			defer cancel()

			static, err := content.NewStaticRepository(logger)
			if err != nil {
				return err
			}
			stories, err := static.ListStories(ctx)
			if err != nil {
				return err
			}
			series, err := static.ListSeries(ctx)
			if err != nil {
				return err
			}
			if issues := content.Audit(stories, series); len(issues) > 0 {
				for _, issue := range issues {
					fmt.Fprintln(cmd.ErrOrStderr(), "⚠️ ", issue)
				}
				return errIssuesFound
			}

			if !skipMigrate {
				if err := opts.migrate(logger); err != nil {
					return err
				}
			}

			pool, err := pgstore.NewPool(ctx, opts.DatabaseURL, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := content.NewPostgresRepository(pool, logger).Import(ctx, stories, series); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d stories and %d series\n", len(stories), len(series))

			if opts.RedisURL == "" {
				return nil
			}
			client, err := redisstore.NewClient(ctx, opts.RedisURL, logger)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := content.NewCachedRepository(static, client, 0, logger).Invalidate(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "content cache flushed")
			return nil
		},
	}

	command.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations first")
	return command
}

func newSitemapCommand(opts *options) *cobra.Command {
	command := &cobra.Command{
		Use:   "sitemap",
		Short: "🗺️ Print sitemap.xml",
		Long:  "Render the sitemap for every listable story and series of the selected source to stdout.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := opts.logger(cmd)
			ctx, cancel := withTimeout(cmd, opts)
			defer cancel()

			repository, cleanup, err := opts.open(cmd, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			service := content.NewService(repository, logger)
			stories, err := service.LatestStories(ctx, -1)
			if err != nil {
				return err
			}
			series, err := service.LatestSeries(ctx, -1)
			if err != nil {
				return err
			}

			_, err = site.BuildSitemap(opts.BaseURL, stories, series, time.Now()).WriteTo(cmd.OutOrStdout())
			return err
		},
	}

	command.Flags().StringVar(&opts.BaseURL, "base-url", opts.BaseURL, "public site origin ($SITE_BASE_URL)")
	return command
}

func newMigrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "🛠️ Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.DatabaseURL == "" {
				return errors.New("--database-url is required")
			}
			return opts.migrate(opts.logger(cmd))
		},
	}
}
