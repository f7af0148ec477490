// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/storytime/internal/catalog"
	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	requestutil "github.com/taibuivan/storytime/internal/platform/request"
	"github.com/taibuivan/storytime/internal/reading"
	"github.com/taibuivan/storytime/pkg/convert"
	"github.com/taibuivan/storytime/pkg/pagination"
)

var (
	crumbHome    = Crumb{Label: "Home", Href: "/"}
	crumbStories = Crumb{Label: "Stories", Href: "/stories"}
	crumbSeries  = Crumb{Label: "Series", Href: "/series"}
)

// # Listings

// listingPage is the data of the story and series listings.
type listingPage[T any] struct {
	Items    []T
	Facets   catalog.FacetValues
	Query    catalog.Query
	Total    int
	Meta     pagination.Meta
	Previous string
	Next     string
}

func newListingPage[T catalog.Record](request *http.Request, listing content.Listing[T], query catalog.Query) listingPage[T] {
	params := pagination.FromRequest(request)
	meta := pagination.NewMeta(params.Page, params.Limit, listing.Total)

	page := listingPage[T]{
		Items:  catalog.Page(listing.Items, params),
		Facets: listing.Facets,
		Query:  query,
		Total:  listing.Total,
		Meta:   meta,
	}
	if meta.HasPrevious() {
		page.Previous = pageLink(request, meta.Page-1)
	}
	if meta.HasNext() {
		page.Next = pageLink(request, meta.Page+1)
	}
	return page
}

func pageLink(request *http.Request, page int) string {
	values := url.Values{}
	for key, value := range request.URL.Query() {
		values[key] = value
	}
	values.Set("page", strconv.Itoa(page))
	return request.URL.Path + "?" + values.Encode()
}

func (handler *Handler) stories(writer http.ResponseWriter, request *http.Request) {
	query := catalog.QueryFromRequest(request)

	listing, err := handler.content.ListStories(request.Context(), query)
	if err != nil {
		handler.fail(writer, request, err, crumbHome)
		return
	}

	handler.render(writer, request, http.StatusOK, "stories", Page{
		Meta: Meta{
			Title:       "All Stories | " + siteName,
			Description: "Browse our magical collection of educational stories for kids. Filter by category and age group to find the perfect tale.",
		},
		Crumbs: []Crumb{crumbHome, crumbStories},
		Data:   newListingPage(request, listing, query),
	})
}

func (handler *Handler) seriesList(writer http.ResponseWriter, request *http.Request) {
	query := catalog.QueryFromRequest(request)

	listing, err := handler.content.ListSeries(request.Context(), query)
	if err != nil {
		handler.fail(writer, request, err, crumbHome)
		return
	}

	handler.render(writer, request, http.StatusOK, "series_list", Page{
		Meta: Meta{
			Title:       "Story Series | " + siteName,
			Description: "Follow ongoing adventures with new chapters every week.",
		},
		Crumbs: []Crumb{crumbHome, crumbSeries},
		Data:   newListingPage(request, listing, query),
	})
}

// # Reading Pages

// readingForm is the posted form of the reading controls.
type readingForm struct {
	Action  string
	Token   string
	Section int
	Handle  reading.Handle
}

func parseReadingForm(request *http.Request) (readingForm, error) {
	if err := request.ParseForm(); err != nil {
		return readingForm{}, apperr.ValidationError("Invalid form")
	}
	return readingForm{
		Action:  request.PostForm.Get("action"),
		Token:   request.PostForm.Get("token"),
		Section: convert.IntOr(request.PostForm.Get("section"), 0),
		Handle:  reading.Handle(request.PostForm.Get("handle")),
	}, nil
}

// step starts a reading session on GET and applies the posted control on POST.
func (handler *Handler) step(request *http.Request, start func() (reading.View, error)) (reading.View, error) {
	if request.Method != http.MethodPost {
		return start()
	}

	form, err := parseReadingForm(request)
	if err != nil {
		return reading.View{}, err
	}

	ctx := request.Context()
	switch form.Action {
	case "next":
		return handler.reading.Next(ctx, form.Token)
	case "previous":
		return handler.reading.Previous(ctx, form.Token)
	case "goto":
		return handler.reading.GoTo(ctx, form.Token, form.Section)
	case "narration":
		return handler.reading.ToggleNarration(ctx, form.Token)
	case "complete":
		return handler.reading.Complete(ctx, form.Token, form.Handle)
	}
	return reading.View{}, apperr.ValidationError("Unknown action", apperr.FieldError{Field: "action", Message: "is not supported"})
}

// readingControls is the data of the "reading" and "narration" partials.
type readingControls struct {
	reading.View
	Action string
}

// feedbackForm is the data of the "feedback-form" partial.
type feedbackForm struct {
	Page  string
	Story string
	Stars []int
}

func newFeedbackForm(page, story string) feedbackForm {
	return feedbackForm{Page: page, Story: story, Stars: []int{1, 2, 3, 4, 5}}
}

type storyPage struct {
	Story    *content.Story
	EmbedURL string
	Reading  readingControls
	Feedback feedbackForm
}

func (handler *Handler) story(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	id := requestutil.ID(request, "id")

	story, err := handler.content.GetStory(ctx, id)
	if err != nil {
		handler.fail(writer, request, err, crumbStories)
		return
	}

	view, err := handler.step(request, func() (reading.View, error) {
		return handler.reading.StartStory(ctx, id)
	})
	if err == nil && view.Target != (reading.Target{StoryID: id}) {
		err = apperr.InvalidSession(errForeignSession)
	}
	if err != nil {
		handler.fail(writer, request, err, crumbStories)
		return
	}

	handler.render(writer, request, http.StatusOK, "story", Page{
		Meta: Meta{
			Title:          story.Title + " | " + siteName,
			Description:    StoryDescription(story),
			Keywords:       StoryKeywords(story),
			Image:          story.ImageURL,
			StructuredData: jsonLD(ArticleSchema(handler.baseURL, story)),
		},
		Crumbs: []Crumb{crumbHome, crumbStories, {Label: story.Title, Href: storyPath(story.ID)}},
		Data: storyPage{
			Story:    story,
			EmbedURL: story.EmbedURL(),
			Reading:  readingControls{View: view, Action: storyPath(story.ID)},
			Feedback: newFeedbackForm(storyPath(story.ID), story.Title),
		},
	})
}

type seriesPage struct {
	Series    *content.Series
	Published int
	Progress  int
}

func (handler *Handler) series(writer http.ResponseWriter, request *http.Request) {
	series, err := handler.content.GetSeries(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		handler.fail(writer, request, err, crumbSeries)
		return
	}

	handler.render(writer, request, http.StatusOK, "series", Page{
		Meta: Meta{
			Title:       series.Title + " | " + siteName,
			Description: series.Description,
			Image:       series.CoverImageURL,
		},
		Crumbs: []Crumb{crumbHome, crumbSeries, {Label: series.Title, Href: seriesPath(series.ID)}},
		Data: seriesPage{
			Series:    series,
			Published: series.PublishedChapters(),
			Progress:  series.Progress(),
		},
	})
}

type chapterPage struct {
	View    content.ChapterView
	Reading *readingControls
}

// chapter renders a chapter. Unpublished chapters render the "coming soon"
// state with no reading controls and no content.
func (handler *Handler) chapter(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	seriesID := requestutil.ID(request, "id")
	chapterID := requestutil.ID(request, "chapterID")

	chapterView, err := handler.content.GetChapter(ctx, seriesID, chapterID)
	if err != nil {
		handler.fail(writer, request, err, Crumb{Label: "Back to Series", Href: seriesPath(seriesID)})
		return
	}

	page := chapterPage{View: chapterView}
	if !chapterView.ComingSoon {
		view, err := handler.step(request, func() (reading.View, error) {
			return handler.reading.StartChapter(ctx, seriesID, chapterID)
		})
		if err == nil && view.Target != (reading.Target{SeriesID: seriesID, ChapterID: chapterID}) {
			err = apperr.InvalidSession(errForeignSession)
		}
		if err != nil {
			handler.fail(writer, request, err, Crumb{Label: "Back to Series", Href: seriesPath(seriesID)})
			return
		}
		page.Reading = &readingControls{View: view, Action: chapterPath(seriesID, chapterID)}
	}

	title := chapterView.Chapter.Title
	if chapterView.ComingSoon {
		title = "Chapter Coming Soon"
	}

	handler.render(writer, request, http.StatusOK, "chapter", Page{
		Meta: Meta{
			Title:       title + " | " + chapterView.SeriesTitle,
			Description: chapterView.Chapter.Summary,
			Image:       chapterView.Chapter.ImageURL,
		},
		Crumbs: []Crumb{
			crumbHome,
			crumbSeries,
			{Label: chapterView.SeriesTitle, Href: seriesPath(seriesID)},
			{Label: chapterView.Chapter.Title, Href: chapterPath(seriesID, chapterID)},
		},
		Data: page,
	})
}
