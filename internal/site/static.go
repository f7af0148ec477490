// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"net/http"

	"github.com/taibuivan/storytime/internal/feedback"
	"github.com/taibuivan/storytime/internal/platform/apperr"
	"github.com/taibuivan/storytime/pkg/convert"
)

// # Static Pages

type staticBlock struct {
	Heading string
	Body    string
}

type staticPage struct {
	path        string
	title       string
	description string
	Heading     string
	Blocks      []staticBlock
}

var staticPages = []staticPage{
	{
		path:        "/about",
		title:       "About Us",
		description: "Learn about our mission to create magical educational content that inspires children to read, learn, and grow through engaging storytelling.",
		Heading:     "About Modak StoryTime",
		Blocks: []staticBlock{
			{"Our Mission", "We create magical educational stories that inspire children to read, learn and grow. Every tale carries a lesson worth remembering."},
			{"Educational Excellence", "Every story is carefully crafted to teach valuable life lessons while entertaining young readers."},
			{"Safe Environment", "We provide a completely safe, ad-free environment where children can explore and learn freely."},
			{"Inclusive Stories", "Our tales celebrate diversity and include characters from all backgrounds and abilities."},
		},
	},
	{
		path:        "/contact",
		title:       "Contact Us",
		description: "Get in touch with the Modak StoryTime team.",
		Heading:     "Contact Us",
		Blocks: []staticBlock{
			{"Say hello", "We love hearing from parents, teachers and young readers. Use the feedback form on any story, or write to us and we will reply as soon as we can."},
			{"Story ideas", "Have an idea for a new story or series? Tell us about your favorite character or scene!"},
		},
	},
	{
		path:        "/privacy",
		title:       "Privacy Policy",
		description: "How Modak StoryTime handles information.",
		Heading:     "Privacy Policy",
		Blocks: []staticBlock{
			{"No accounts", "Reading, quizzes and spelling games need no account. Game progress lives only in the page you are on."},
			{"Feedback", "When you send feedback we store your rating, your message and, if you choose to give it, your email address. We never share it."},
			{"No advertising", "We do not show ads and we do not track children across sites."},
		},
	},
	{
		path:        "/terms",
		title:       "Terms of Use",
		description: "The terms for using Modak StoryTime.",
		Heading:     "Terms of Use",
		Blocks: []staticBlock{
			{"Personal use", "Stories are free to read at home and in the classroom."},
			{"Content", "All stories, illustrations and games remain the property of their authors."},
		},
	},
}

func (handler *Handler) staticPage(page staticPage) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		handler.render(writer, request, http.StatusOK, "static", Page{
			Meta:   Meta{Title: page.title + " | " + siteName, Description: page.description},
			Crumbs: []Crumb{crumbHome, {Label: page.title, Href: page.path}},
			Data:   page,
		})
	}
}

// # Feedback

type feedbackPage struct {
	Message string
	Back    string
}

// submitFeedback handles the feedback form on story pages.
func (handler *Handler) submitFeedback(writer http.ResponseWriter, request *http.Request) {
	back := Crumb{Label: "Back to Stories", Href: "/stories"}
	if err := request.ParseForm(); err != nil {
		handler.fail(writer, request, apperr.ValidationError("Invalid form"), back)
		return
	}

	entry := &feedback.Entry{
		Rating:    convert.Int(request.PostForm.Get("rating")),
		Message:   request.PostForm.Get("message"),
		Email:     request.PostForm.Get("email"),
		Page:      request.PostForm.Get("page"),
		Story:     request.PostForm.Get("story"),
		UserAgent: request.UserAgent(),
	}
	if err := handler.feedback.Submit(request.Context(), entry); err != nil {
		handler.fail(writer, request, err, back)
		return
	}

	target := entry.Page
	if target == "" || target[0] != '/' {
		target = "/"
	}

	handler.render(writer, request, http.StatusCreated, "feedback", Page{
		Meta: Meta{Title: "Thank you! | " + siteName},
		Data: feedbackPage{Message: feedback.RatingMessage(entry.Rating), Back: target},
	})
}

// # Crawlers

func (handler *Handler) sitemap(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()

	stories, err := handler.content.LatestStories(ctx, -1)
	if err != nil {
		handler.fail(writer, request, err, crumbHome)
		return
	}
	series, err := handler.content.LatestSeries(ctx, -1)
	if err != nil {
		handler.fail(writer, request, err, crumbHome)
		return
	}

	writer.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = BuildSitemap(handler.baseURL, stories, series, handler.now()).WriteTo(writer)
}

func (handler *Handler) robots(writer http.ResponseWriter, _ *http.Request) {
	writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = writer.Write([]byte(Robots(handler.baseURL)))
}
