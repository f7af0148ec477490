// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config reads the server settings from the environment with
caarlos0/env.

Every setting has a working default except SESSION_SECRET, so a fresh
checkout runs with only that set: the embedded catalogue, no database, no
cache and narration off. [Load] rejects combinations that cannot work,
such as CONTENT_SOURCE=postgres without DATABASE_URL.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Content Sources

const (
	// SourceStatic serves the content files embedded in the binary.
	SourceStatic = "static"

	// SourceCMS queries the hosted headless CMS on every cache miss.
	SourceCMS = "cms"

	// SourcePostgres reads the content mirror stored in PostgreSQL.
	SourcePostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Storytime server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// SiteBaseURL is the public origin used in the sitemap and structured data.
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"https://modakstorytime.com"`

	// ContentSource selects where stories and series are read from.
	ContentSource string `env:"CONTENT_SOURCE" envDefault:"static"`

	// Relational Database (PostgreSQL). Optional unless ContentSource is "postgres".
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath overrides the migrations embedded in the binary with a
	// directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Key-Value Cache (Redis). Optional.
	RedisURL        string        `env:"REDIS_URL"`
	ContentCacheTTL time.Duration `env:"CONTENT_CACHE_TTL" envDefault:"5m"`

	// Headless CMS
	CMSProjectID  string        `env:"CMS_PROJECT_ID"`
	CMSDataset    string        `env:"CMS_DATASET"     envDefault:"production"`
	CMSAPIVersion string        `env:"CMS_API_VERSION" envDefault:"2024-01-01"`
	CMSToken      string        `env:"CMS_TOKEN"`
	CMSBaseURL    string        `env:"CMS_BASE_URL"`
	CMSTimeout    time.Duration `env:"CMS_TIMEOUT"     envDefault:"10s"`

	// Interaction sessions (quiz, spelling game, reading) are signed tokens.
	SessionSecret string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	// Read-aloud narration (Google Cloud Text-to-Speech)
	NarrationEnabled  bool          `env:"NARRATION_ENABLED"  envDefault:"false"`
	NarrationVoice    string        `env:"NARRATION_VOICE"    envDefault:"en-US-Standard-C"`
	NarrationLanguage string        `env:"NARRATION_LANGUAGE" envDefault:"en-US"`
	NarrationClipTTL  time.Duration `env:"NARRATION_CLIP_TTL" envDefault:"30m"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses the environment and checks settings that depend on each other.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks cross-field requirements that struct tags cannot express.
func (c *Config) validate() error {
	switch c.ContentSource {
	case SourceStatic:
	case SourceCMS:
		if c.CMSProjectID == "" && c.CMSBaseURL == "" {
			return fmt.Errorf("config: CONTENT_SOURCE=cms requires CMS_PROJECT_ID or CMS_BASE_URL")
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: CONTENT_SOURCE=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("config: unknown CONTENT_SOURCE %q", c.ContentSource)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins is the site's own origin followed by EXTRA_ORIGINS.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	if site := strings.TrimRight(c.SiteBaseURL, "/"); site != "" {
		origins = append(origins, site)
	}
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// CMSEndpoint returns the query endpoint root for the configured CMS dataset.
func (c *Config) CMSEndpoint() string {
	base := c.CMSBaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.api.sanity.io", c.CMSProjectID)
	}
	return fmt.Sprintf("%s/v%s/data/query/%s", strings.TrimRight(base, "/"), c.CMSAPIVersion, c.CMSDataset)
}
