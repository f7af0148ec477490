// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command contentctl administers the Storytime content catalogue.
//
// # Commands
//
//   - validate: audit a content source for records readers would never see.
//   - import:   copy the embedded catalogue into the PostgreSQL mirror.
//   - sitemap:  print sitemap.xml for a content source.
//   - migrate:  apply pending database migrations.
//
// Settings are read from the same environment variables as the server
// (CONTENT_SOURCE, DATABASE_URL, REDIS_URL, CMS_*, SITE_BASE_URL) and can be
// overridden with flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
