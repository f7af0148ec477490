// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/database/schema"
	"github.com/taibuivan/storytime/internal/platform/dberr"
	"github.com/taibuivan/storytime/internal/platform/postgres"
)

// # PostgreSQL Repository

// PostgresRepository reads the content mirror written by [PostgresRepository.Import].
//
// Each read assembles aggregates in a fixed number of round-trips: one for the
// root rows and one per child table, regardless of catalogue size.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresRepository constructs a PostgreSQL backed content source.
func NewPostgresRepository(pool *pgxpool.Pool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{pool: pool, logger: logger}
}

func (repository *PostgresRepository) ListStories(ctx context.Context) ([]*Story, error) {
	return repository.loadStories(ctx, "")
}

func (repository *PostgresRepository) FindStory(ctx context.Context, id string) (*Story, error) {
	stories, err := repository.loadStories(ctx, fmt.Sprintf("WHERE %s = $1", schema.ContentStory.ID), id)
	if err != nil {
		return nil, err
	}
	if len(stories) == 0 {
		return nil, apperr.NotFound("Story")
	}
	return stories[0], nil
}

func (repository *PostgresRepository) ListSeries(ctx context.Context) ([]*Series, error) {
	return repository.loadSeries(ctx, "")
}

func (repository *PostgresRepository) FindSeries(ctx context.Context, id string) (*Series, error) {
	series, err := repository.loadSeries(ctx, fmt.Sprintf("WHERE %s = $1", schema.ContentSeries.ID), id)
	if err != nil {
		return nil, err
	}
	if len(series) == 0 {
		return nil, apperr.NotFound("Series")
	}
	return series[0], nil
}

// Ping verifies the database is reachable.
func (repository *PostgresRepository) Ping(ctx context.Context) error {
	return postgres.Ping(ctx, repository.pool)
}

// # Story Aggregates

func (repository *PostgresRepository) loadStories(ctx context.Context, where string, args ...any) ([]*Story, error) {
	table := schema.ContentStory
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		%s
		ORDER BY %s ASC, %s DESC;
	`,
		table.ID, table.Title, table.Summary, table.MoralLesson, table.AgeGroup,
		table.ReadingTime, table.Category, table.ImageURL, table.VideoURL,
		table.Table,
		where,
		table.Position, table.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.fail(ctx, err, "list_stories")
	}
	defer rows.Close()

	var stories []*Story
	byID := make(map[string]*Story)
	for rows.Next() {
		story := &Story{}
		if err := rows.Scan(
			&story.ID, &story.Title, &story.Summary, &story.MoralLesson, &story.AgeGroup,
			&story.ReadingTime, &story.Category, &story.ImageURL, &story.VideoURL,
		); err != nil {
			return nil, repository.fail(ctx, err, "scan_story")
		}
		stories = append(stories, story)
		byID[story.ID] = story
	}
	if err := rows.Err(); err != nil {
		return nil, repository.fail(ctx, err, "list_stories")
	}

	if len(stories) == 0 {
		return []*Story{}, nil
	}

	ids := make([]string, 0, len(stories))
	for _, story := range stories {
		ids = append(ids, story.ID)
	}

	if err := repository.attachStorySections(ctx, ids, byID); err != nil {
		return nil, err
	}
	if err := repository.attachVocabulary(ctx, ids, byID); err != nil {
		return nil, err
	}

	return normalizeStories(stories), nil
}

func (repository *PostgresRepository) attachStorySections(ctx context.Context, ids []string, byID map[string]*Story) error {
	section := schema.ContentSection
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s;
	`,
		section.StoryID, section.Text, section.ImageURL,
		section.Table,
		section.StoryID,
		section.StoryID, section.Position,
	)

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return repository.fail(ctx, err, "list_story_sections")
	}
	defer rows.Close()

	for rows.Next() {
		var storyID string
		var item Section
		if err := rows.Scan(&storyID, &item.Text, &item.ImageURL); err != nil {
			return repository.fail(ctx, err, "scan_story_section")
		}
		if story, ok := byID[storyID]; ok {
			story.Sections = append(story.Sections, item)
		}
	}
	return rows.Err()
}

func (repository *PostgresRepository) attachVocabulary(ctx context.Context, ids []string, byID map[string]*Story) error {
	vocabulary := schema.ContentVocabulary
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s;
	`,
		vocabulary.StoryID, vocabulary.Word, vocabulary.Definition, vocabulary.Pronunciation,
		vocabulary.Table,
		vocabulary.StoryID,
		vocabulary.StoryID, vocabulary.Position,
	)

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return repository.fail(ctx, err, "list_vocabulary")
	}
	defer rows.Close()

	for rows.Next() {
		var storyID string
		var helper VocabularyHelper
		if err := rows.Scan(&storyID, &helper.Word, &helper.Definition, &helper.Pronunciation); err != nil {
			return repository.fail(ctx, err, "scan_vocabulary")
		}
		if story, ok := byID[storyID]; ok {
			story.Vocabulary = append(story.Vocabulary, helper)
		}
	}
	return rows.Err()
}

// # Series Aggregates

func (repository *PostgresRepository) loadSeries(ctx context.Context, where string, args ...any) ([]*Series, error) {
	table := schema.ContentSeries
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s::float8, %s
		FROM %s
		%s
		ORDER BY %s ASC, %s DESC;
	`,
		table.ID, table.Title, table.Description, table.Category, table.AgeGroup, table.Status,
		table.PublishSchedule, table.CoverImageURL, table.Tags, table.TotalChapters, table.Rating, table.Subscribers,
		table.Table,
		where,
		table.Position, table.CreatedAt,
	)

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.fail(ctx, err, "list_series")
	}
	defer rows.Close()

	var series []*Series
	byID := make(map[string]*Series)
	for rows.Next() {
		item := &Series{}
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Category, &item.AgeGroup, &item.Status,
			&item.PublishSchedule, &item.CoverImageURL, &item.Tags, &item.TotalChapters, &item.Rating, &item.Subscribers,
		); err != nil {
			return nil, repository.fail(ctx, err, "scan_series")
		}
		series = append(series, item)
		byID[item.ID] = item
	}
	if err := rows.Err(); err != nil {
		return nil, repository.fail(ctx, err, "list_series")
	}

	if len(series) == 0 {
		return []*Series{}, nil
	}

	ids := make([]string, 0, len(series))
	for _, item := range series {
		ids = append(ids, item.ID)
	}

	if err := repository.attachChapters(ctx, ids, byID); err != nil {
		return nil, err
	}

	return normalizeSeries(repository.logger, series), nil
}

// attachChapters loads chapters and their sections for the given series.
func (repository *PostgresRepository) attachChapters(ctx context.Context, ids []string, byID map[string]*Series) error {
	chapter := schema.ContentChapter
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		ORDER BY %s, %s;
	`,
		chapter.SeriesID, chapter.ID, chapter.ChapterNumber, chapter.Title, chapter.Summary,
		chapter.IsPublished, chapter.PublishDate, chapter.ReadingTime, chapter.ImageURL,
		chapter.Table,
		chapter.SeriesID,
		chapter.SeriesID, chapter.ChapterNumber,
	)

	rows, err := repository.pool.Query(ctx, query, ids)
	if err != nil {
		return repository.fail(ctx, err, "list_chapters")
	}

	type chapterKey struct{ seriesID, chapterID string }
	var order []chapterKey
	chapters := make(map[chapterKey]*Chapter)

	for rows.Next() {
		var seriesID string
		item := &Chapter{}
		if err := rows.Scan(
			&seriesID, &item.ID, &item.ChapterNumber, &item.Title, &item.Summary,
			&item.IsPublished, &item.PublishDate, &item.ReadingTime, &item.ImageURL,
		); err != nil {
			rows.Close()
			return repository.fail(ctx, err, "scan_chapter")
		}
		key := chapterKey{seriesID, item.ID}
		order = append(order, key)
		chapters[key] = item
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return repository.fail(ctx, err, "list_chapters")
	}

	section := schema.ContentSection
	sectionQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1) AND %s IS NOT NULL
		ORDER BY %s, %s, %s;
	`,
		section.SeriesID, section.ChapterID, section.Text, section.ImageURL,
		section.Table,
		section.SeriesID, section.ChapterID,
		section.SeriesID, section.ChapterID, section.Position,
	)

	sectionRows, err := repository.pool.Query(ctx, sectionQuery, ids)
	if err != nil {
		return repository.fail(ctx, err, "list_chapter_sections")
	}
	defer sectionRows.Close()

	for sectionRows.Next() {
		var key chapterKey
		var item Section
		if err := sectionRows.Scan(&key.seriesID, &key.chapterID, &item.Text, &item.ImageURL); err != nil {
			return repository.fail(ctx, err, "scan_chapter_section")
		}
		if target, ok := chapters[key]; ok {
			target.Sections = append(target.Sections, item)
		}
	}
	if err := sectionRows.Err(); err != nil {
		return repository.fail(ctx, err, "list_chapter_sections")
	}

	for _, key := range order {
		if series, ok := byID[key.seriesID]; ok {
			series.Chapters = append(series.Chapters, *chapters[key])
		}
	}
	return nil
}

// # Import

/*
Import replaces the whole mirror with the given catalogue in one transaction.

Description: Existing rows are deleted (children cascade) and the new
catalogue is inserted. Slice order becomes the catalog order. Sections and
vocabulary are streamed with COPY.

Parameters:
  - ctx: context.Context
  - stories: []*Story
  - series: []*Series

Returns:
  - error: Any failure rolls back every change
*/
func (repository *PostgresRepository) Import(ctx context.Context, stories []*Story, series []*Series) error {
	transaction, err := repository.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(ctx)

	for _, table := range []string{schema.ContentSeries.Table, schema.ContentStory.Table} {
		if _, err := transaction.Exec(ctx, "DELETE FROM "+table); err != nil {
			return dberr.Wrap(err, "clear_"+table)
		}
	}

	var sectionRows, vocabularyRows [][]any

	storyInsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		schema.ContentStory.Table,
		schema.ContentStory.ID, schema.ContentStory.Title, schema.ContentStory.Summary, schema.ContentStory.MoralLesson,
		schema.ContentStory.AgeGroup, schema.ContentStory.ReadingTime, schema.ContentStory.Category,
		schema.ContentStory.ImageURL, schema.ContentStory.VideoURL, schema.ContentStory.Position,
	)

	for position, story := range stories {
		if _, err := transaction.Exec(ctx, storyInsert,
			story.ID, story.Title, story.Summary, story.MoralLesson, story.AgeGroup,
			story.ReadingTime, story.Category, story.ImageURL, story.VideoURL, position,
		); err != nil {
			return dberr.Wrap(err, "insert_story")
		}
		for i, item := range story.Sections {
			sectionRows = append(sectionRows, []any{story.ID, nil, nil, i, item.Text, item.ImageURL})
		}
		for i, helper := range story.Vocabulary {
			vocabularyRows = append(vocabularyRows, []any{story.ID, i, helper.Word, helper.Definition, helper.Pronunciation})
		}
	}

	seriesInsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		schema.ContentSeries.Table,
		schema.ContentSeries.ID, schema.ContentSeries.Title, schema.ContentSeries.Description, schema.ContentSeries.Category,
		schema.ContentSeries.AgeGroup, schema.ContentSeries.Status, schema.ContentSeries.PublishSchedule,
		schema.ContentSeries.CoverImageURL, schema.ContentSeries.Tags, schema.ContentSeries.TotalChapters,
		schema.ContentSeries.Rating, schema.ContentSeries.Subscribers, schema.ContentSeries.Position,
	)

	chapterBatch := &pgx.Batch{}
	chapterInsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schema.ContentChapter.Table,
		schema.ContentChapter.ID, schema.ContentChapter.SeriesID, schema.ContentChapter.ChapterNumber,
		schema.ContentChapter.Title, schema.ContentChapter.Summary, schema.ContentChapter.IsPublished,
		schema.ContentChapter.PublishDate, schema.ContentChapter.ReadingTime, schema.ContentChapter.ImageURL,
	)

	for position, item := range series {
		tags := item.Tags
		if tags == nil {
			tags = []string{}
		}
		if _, err := transaction.Exec(ctx, seriesInsert,
			item.ID, item.Title, item.Description, item.Category, item.AgeGroup, string(item.Status),
			item.PublishSchedule, item.CoverImageURL, tags, item.TotalChapters,
			item.Rating, item.Subscribers, position,
		); err != nil {
			return dberr.Wrap(err, "insert_series")
		}
		for _, chapter := range item.Chapters {
			chapterBatch.Queue(chapterInsert,
				chapter.ID, item.ID, chapter.ChapterNumber, chapter.Title, chapter.Summary,
				chapter.IsPublished, chapter.PublishDate, chapter.ReadingTime, chapter.ImageURL,
			)
			for i, section := range chapter.Sections {
				sectionRows = append(sectionRows, []any{nil, item.ID, chapter.ID, i, section.Text, section.ImageURL})
			}
		}
	}

	if chapterBatch.Len() > 0 {
		results := transaction.SendBatch(ctx, chapterBatch)
		for i := 0; i < chapterBatch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return dberr.Wrap(err, "insert_chapter")
			}
		}
		if err := results.Close(); err != nil {
			return dberr.Wrap(err, "insert_chapter")
		}
	}

	if _, err := transaction.CopyFrom(ctx, identifier(schema.ContentSection.Table),
		schema.ContentSection.Columns(), pgx.CopyFromRows(sectionRows)); err != nil {
		return dberr.Wrap(err, "copy_sections")
	}

	vocabulary := schema.ContentVocabulary
	if _, err := transaction.CopyFrom(ctx, identifier(vocabulary.Table),
		[]string{vocabulary.StoryID, vocabulary.Position, vocabulary.Word, vocabulary.Definition, vocabulary.Pronunciation},
		pgx.CopyFromRows(vocabularyRows)); err != nil {
		return dberr.Wrap(err, "copy_vocabulary")
	}

	if err := transaction.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit import: %w", err)
	}

	repository.logger.Info("content_imported",
		slog.Int("stories", len(stories)),
		slog.Int("series", len(series)),
		slog.Int("sections", len(sectionRows)),
	)
	return nil
}

// identifier splits "schema.table" into a quoted pgx identifier.
func identifier(table string) pgx.Identifier {
	return pgx.Identifier(strings.Split(table, "."))
}

// fail logs a read failure and reports it as content being unavailable.
func (repository *PostgresRepository) fail(ctx context.Context, err error, action string) error {
	repository.logger.ErrorContext(ctx, "content_fetch_failed",
		slog.String("source", "postgres"),
		slog.String("action", action),
		slog.Any("error", err),
	)
	return apperr.ContentUnavailable(fmt.Errorf("postgres %s: %w", action, err))
}
