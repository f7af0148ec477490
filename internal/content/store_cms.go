// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/internal/platform/ctxutil"
)

// # Queries
//
// Projections rename CMS fields to the JSON names of [Story] and [Series] so
// results decode straight into the domain types.

const storyProjection = `{
  "id": slug.current,
  title,
  summary,
  "sections": content[]{text, "image_url": image},
  "moral_lesson": moralLesson,
  "age_group": ageGroup,
  "reading_time": readingTime,
  category,
  "image_url": image,
  "video_url": youtubeUrl,
  "vocabulary": wordHelpers[]{word, definition, pronunciation}
}`

const seriesProjection = `{
  "id": slug.current,
  title,
  description,
  category,
  "age_group": ageGroup,
  status,
  "publish_schedule": publishSchedule,
  "cover_image_url": coverImage,
  tags,
  "total_chapters": coalesce(totalChapters, count(chapters)),
  "rating": coalesce(rating, 0),
  "subscribers": coalesce(subscribers, 0),
  "chapters": chapters[]->{
    "id": _id,
    title,
    "chapter_number": chapterNumber,
    summary,
    "sections": content[]{text, "image_url": image},
    "is_published": coalesce(isPublished, true),
    "publish_date": publishDate,
    "reading_time": readingTime,
    "image_url": image
  }
}`

var (
	queryStories      = `*[_type == "story"] | order(_createdAt desc) ` + storyProjection
	queryStoryBySlug  = `*[_type == "story" && slug.current == $id][0] ` + storyProjection
	querySeries       = `*[_type == "series"] | order(_createdAt desc) ` + seriesProjection
	querySeriesBySlug = `*[_type == "series" && slug.current == $id][0] ` + seriesProjection
	queryPing         = `count(*[_type in ["story", "series"]])`
)

// cmsEnvelope is the response body of the CMS query API.
type cmsEnvelope[T any] struct {
	Result T `json:"result"`
}

// CMSOptions configures [NewCMSRepository].
type CMSOptions struct {
	// Endpoint is the dataset query URL, e.g. https://<project>.api.sanity.io/v2024-01-01/data/query/production.
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// CMSRepository issues read queries against the hosted CMS on every call.
// Failures are never retried here; the reader gets a manual "Try again".
type CMSRepository struct {
	client *resty.Client
}

// NewCMSRepository builds a client bound to one dataset endpoint.
func NewCMSRepository(options CMSOptions, logger *slog.Logger) *CMSRepository {
	client := resty.New().
		SetBaseURL(options.Endpoint).
		SetTimeout(options.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger: logger})

	if options.Token != "" {
		client.SetAuthToken(options.Token)
	}

	return &CMSRepository{client: client}
}

// # Repository Implementation

func (repository *CMSRepository) ListStories(ctx context.Context) ([]*Story, error) {
	var stories []*Story
	if err := repository.query(ctx, "list_stories", queryStories, nil, &stories); err != nil {
		return nil, err
	}
	return normalizeStories(stories), nil
}

/*
FindStory resolves a story by slug.

Description: Documents with a slug are found by a targeted query. Documents
without one only have the slug derived from their title, so on a miss the
full listing is searched before giving up.
*/
func (repository *CMSRepository) FindStory(ctx context.Context, id string) (*Story, error) {
	var story *Story
	if err := repository.query(ctx, "find_story", queryStoryBySlug, map[string]string{"id": id}, &story); err != nil {
		return nil, err
	}
	if story != nil {
		return normalizeStories([]*Story{story})[0], nil
	}

	stories, err := repository.ListStories(ctx)
	if err != nil {
		return nil, err
	}
	if found, ok := findByID(stories, id, func(s *Story) string { return s.ID }); ok {
		return found, nil
	}
	return nil, apperr.NotFound("Story")
}

func (repository *CMSRepository) ListSeries(ctx context.Context) ([]*Series, error) {
	var series []*Series
	if err := repository.query(ctx, "list_series", querySeries, nil, &series); err != nil {
		return nil, err
	}
	return normalizeSeries(ctxutil.GetLogger(ctx), series), nil
}

func (repository *CMSRepository) FindSeries(ctx context.Context, id string) (*Series, error) {
	var series *Series
	if err := repository.query(ctx, "find_series", querySeriesBySlug, map[string]string{"id": id}, &series); err != nil {
		return nil, err
	}
	if series != nil {
		return normalizeSeries(ctxutil.GetLogger(ctx), []*Series{series})[0], nil
	}

	all, err := repository.ListSeries(ctx)
	if err != nil {
		return nil, err
	}
	if found, ok := findByID(all, id, func(s *Series) string { return s.ID }); ok {
		return found, nil
	}
	return nil, apperr.NotFound("Series")
}

// Ping issues a trivial count query to confirm the CMS is reachable.
func (repository *CMSRepository) Ping(ctx context.Context) error {
	var count int
	return repository.query(ctx, "ping", queryPing, nil, &count)
}

// # Transport

// query runs one GROQ query and decodes its result into target.
// Parameters are JSON-encoded and passed as $name query arguments.
func (repository *CMSRepository) query(ctx context.Context, action, groq string, params map[string]string, target any) error {
	request := repository.client.R().
		SetContext(ctx).
		SetQueryParam("query", groq)

	for name, value := range params {
		encoded, _ := json.Marshal(value)
		request.SetQueryParam("$"+name, string(encoded))
	}

	started := time.Now()
	response, err := request.Get("")
	if err != nil {
		return repository.unavailable(ctx, action, err)
	}

	if response.StatusCode() != http.StatusOK {
		return repository.unavailable(ctx, action, fmt.Errorf("cms returned %s", response.Status()))
	}

	var envelope cmsEnvelope[json.RawMessage]
	if err := json.Unmarshal(response.Body(), &envelope); err != nil {
		return repository.unavailable(ctx, action, fmt.Errorf("decode envelope: %w", err))
	}

	ctxutil.GetLogger(ctx).Debug("cms_query",
		slog.String("action", action),
		slog.Duration("duration", time.Since(started)),
	)

	// An absent or null result means "nothing found" and leaves target untouched.
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}

	if err := json.Unmarshal(envelope.Result, target); err != nil {
		return repository.unavailable(ctx, action, fmt.Errorf("decode result: %w", err))
	}
	return nil
}

func (repository *CMSRepository) unavailable(ctx context.Context, action string, cause error) error {
	ctxutil.GetLogger(ctx).Error("content_fetch_failed",
		slog.String("source", "cms"),
		slog.String("action", action),
		slog.Any("error", cause),
	)
	return apperr.ContentUnavailable(fmt.Errorf("cms %s: %w", action, cause))
}

// restyLogger routes resty's own diagnostics into slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error("cms_client", slog.String("detail", fmt.Sprintf(format, args...)))
}

func (l restyLogger) Warnf(format string, args ...interface{}) {
	l.logger.Warn("cms_client", slog.String("detail", fmt.Sprintf(format, args...)))
}

func (l restyLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug("cms_client", slog.String("detail", fmt.Sprintf(format, args...)))
}
