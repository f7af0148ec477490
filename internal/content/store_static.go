// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/storytime/internal/platform/apperr"
)

//go:embed data/*.yaml
var embeddedData embed.FS

const (
	storiesFile = "data/stories.yaml"
	seriesFile  = "data/series.yaml"
)

type storiesDocument struct {
	Stories []*Story `yaml:"stories"`
}

type seriesDocument struct {
	Series []*Series `yaml:"series"`
}

// StaticRepository serves a catalogue decoded once at startup.
type StaticRepository struct {
	stories []*Story
	series  []*Series
}

// NewStaticRepository loads the catalogue embedded in the binary.
func NewStaticRepository(logger *slog.Logger) (*StaticRepository, error) {
	return LoadStaticRepository(embeddedData, logger)
}

/*
LoadStaticRepository decodes stories.yaml and series.yaml from fsys.

Description: Files live under a "data/" directory. Either file may be
absent, in which case that half of the catalogue is empty.

Parameters:
  - fsys: fs.FS (Embedded data or a test fixture such as fstest.MapFS)
  - logger: *slog.Logger

Returns:
  - *StaticRepository: Normalized, read-only catalogue
  - error: Malformed YAML
*/
func LoadStaticRepository(fsys fs.FS, logger *slog.Logger) (*StaticRepository, error) {
	var stories storiesDocument
	if err := decodeYAML(fsys, storiesFile, &stories); err != nil {
		return nil, err
	}

	var series seriesDocument
	if err := decodeYAML(fsys, seriesFile, &series); err != nil {
		return nil, err
	}

	repository := &StaticRepository{
		stories: normalizeStories(stories.Stories),
		series:  normalizeSeries(logger, series.Series),
	}

	logger.Info("static_content_loaded",
		slog.Int("stories", len(repository.stories)),
		slog.Int("series", len(repository.series)),
	)

	return repository, nil
}

func decodeYAML(fsys fs.FS, name string, target any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("content: read %s: %w", name, err)
	}

	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("content: decode %s: %w", name, err)
	}
	return nil
}

func (repository *StaticRepository) ListStories(_ context.Context) ([]*Story, error) {
	return repository.stories, nil
}

func (repository *StaticRepository) FindStory(_ context.Context, id string) (*Story, error) {
	story, ok := findByID(repository.stories, id, func(s *Story) string { return s.ID })
	if !ok {
		return nil, apperr.NotFound("Story")
	}
	return story, nil
}

func (repository *StaticRepository) ListSeries(_ context.Context) ([]*Series, error) {
	return repository.series, nil
}

func (repository *StaticRepository) FindSeries(_ context.Context, id string) (*Series, error) {
	series, ok := findByID(repository.series, id, func(s *Series) string { return s.ID })
	if !ok {
		return nil, apperr.NotFound("Series")
	}
	return series, nil
}
