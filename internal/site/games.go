// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/taibuivan/storytime/internal/content"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	requestutil "github.com/taibuivan/storytime/internal/platform/request"
	"github.com/taibuivan/storytime/internal/quiz"
	"github.com/taibuivan/storytime/internal/spelling"
	"github.com/taibuivan/storytime/pkg/convert"
)

// errUnknownAction is returned for a form posted with an unsupported action.
var errUnknownAction = apperr.ValidationError("Unknown action", apperr.FieldError{Field: "action", Message: "is not supported"})

// errForeignSession is the cause when a token belongs to a different page.
var errForeignSession = errors.New("site: session token belongs to another page")

// # Quiz

type quizPage struct {
	Story  *content.Story
	Quiz   quiz.View
	Action string
}

func (handler *Handler) quizPage(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	id := requestutil.ID(request, "id")
	back := Crumb{Label: "Back to Story", Href: storyPath(id)}

	story, err := handler.content.GetStory(ctx, id)
	if err != nil {
		handler.fail(writer, request, err, crumbStories)
		return
	}

	var view quiz.View
	if request.Method == http.MethodPost {
		view, err = handler.quizAction(request)
		if err == nil && view.StoryID != id {
			err = apperr.InvalidSession(errForeignSession)
		}
	} else {
		view, err = handler.quiz.Start(ctx, id)
	}
	if err != nil {
		handler.fail(writer, request, err, back)
		return
	}

	handler.render(writer, request, http.StatusOK, "quiz", Page{
		Meta: Meta{
			Title:       "Questions: " + story.Title + " | " + siteName,
			Description: "Test your understanding of " + story.Title + " with four fun questions.",
		},
		Crumbs: []Crumb{crumbHome, crumbStories, {Label: story.Title, Href: storyPath(id)}, {Label: "Questions", Href: quizPath(id)}},
		Data:   quizPage{Story: story, Quiz: view, Action: quizPath(id)},
	})
}

func (handler *Handler) quizAction(request *http.Request) (quiz.View, error) {
	if err := request.ParseForm(); err != nil {
		return quiz.View{}, apperr.ValidationError("Invalid form")
	}
	ctx := request.Context()
	token := request.PostForm.Get("token")

	switch request.PostForm.Get("action") {
	case "answer":
		return handler.quiz.Answer(ctx, token, convert.IntOr(request.PostForm.Get("option"), -1))
	case "advance":
		return handler.quiz.Advance(ctx, token)
	case "reset":
		return handler.quiz.Reset(ctx, token)
	}
	return quiz.View{}, errUnknownAction
}

// # Spelling Game

type spellingPage struct {
	Story       *content.Story
	Game        spelling.View
	Unavailable bool
	Action      string
}

/*
spellingPage renders the spelling game.

Description: While correct or incorrect feedback is showing, the page
refreshes itself with the token in the query string once the feedback delay
has passed, which lets the game move on without JavaScript.
*/
func (handler *Handler) spellingPage(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	id := requestutil.ID(request, "id")
	back := Crumb{Label: "Back to Story", Href: storyPath(id)}

	story, err := handler.content.GetStory(ctx, id)
	if err != nil {
		handler.fail(writer, request, err, crumbStories)
		return
	}

	page := Page{
		Meta: Meta{
			Title:       "Spelling Game: " + story.Title + " | " + siteName,
			Description: "Practice spelling words from " + story.Title + ".",
		},
		Crumbs: []Crumb{crumbHome, crumbStories, {Label: story.Title, Href: storyPath(id)}, {Label: "Spelling Game", Href: spellingPath(id)}},
	}

	view, err := handler.spellingAction(request, id)
	if err == nil && view.StoryID != id {
		err = apperr.InvalidSession(errForeignSession)
	}
	if appError := apperr.As(err); appError != nil && appError.Code == "UNPROCESSABLE" {
		page.Data = spellingPage{Story: story, Unavailable: true, Action: spellingPath(id)}
		handler.render(writer, request, http.StatusOK, "spelling", page)
		return
	}
	if err != nil {
		handler.fail(writer, request, err, back)
		return
	}

	if view.Phase.Transient() {
		page.Refresh = &Refresh{
			Seconds: int(spelling.FeedbackDelay.Seconds()),
			URL:     spellingPath(id) + "?" + url.Values{"token": {view.Token}}.Encode(),
		}
	}
	page.Data = spellingPage{Story: story, Game: view, Action: spellingPath(id)}
	handler.render(writer, request, http.StatusOK, "spelling", page)
}

func (handler *Handler) spellingAction(request *http.Request, storyID string) (spelling.View, error) {
	ctx := request.Context()

	if request.Method != http.MethodPost {
		if token := request.URL.Query().Get("token"); token != "" {
			return handler.spelling.State(ctx, token)
		}
		return handler.spelling.Start(ctx, storyID)
	}

	if err := request.ParseForm(); err != nil {
		return spelling.View{}, apperr.ValidationError("Invalid form")
	}
	token := request.PostForm.Get("token")

	switch request.PostForm.Get("action") {
	case "submit":
		view, err := handler.spelling.Submit(ctx, token, request.PostForm.Get("input"))
		if isValidation(err) {
			// A blank answer just shows the same word again.
			return handler.spelling.State(ctx, token)
		}
		return view, err
	case "hint":
		return handler.spelling.ToggleHint(ctx, token)
	case "skip":
		return handler.spelling.Skip(ctx, token)
	case "reset":
		return handler.spelling.Reset(ctx, token)
	}
	return spelling.View{}, errUnknownAction
}

func isValidation(err error) bool {
	var appError *apperr.AppError
	return errors.As(err, &appError) && appError.Code == "VALIDATION_ERROR"
}
