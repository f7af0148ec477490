// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/taibuivan/storytime/internal/content"
)

// # Site Identity

const (
	siteName        = "Modak StoryTime"
	siteTitle       = "Modak StoryTime - Educational Tales That Teach Life Lessons"
	siteDescription = "Discover magical educational stories for children ages 3-12. Interactive tales with moral lessons, reading activities, spelling games, and comprehension questions. Safe, fun learning!"
	siteKeywords    = "modak storytime, educational stories for children, moral lessons kids, interactive reading activities, children's books online, bedtime stories with lessons"
)

// Meta is the head section of a page.
type Meta struct {
	Title       string
	Description string
	Keywords    string
	Canonical   string
	Image       string

	// StructuredData holds schema.org JSON-LD documents, already encoded.
	StructuredData []template.JS
}

// Crumb is one breadcrumb link.
type Crumb struct {
	Label string
	Href  string
}

// StoryDescription builds the meta description of a story page.
func StoryDescription(story *content.Story) string {
	return fmt.Sprintf("%s Perfect for ages %s. Reading time: %s. Learn about %s",
		story.Summary, story.AgeGroup, story.ReadingTime, story.MoralLesson)
}

// StoryKeywords builds the keyword list of a story page.
func StoryKeywords(story *content.Story) string {
	return strings.Join([]string{
		strings.ToLower(story.Category),
		story.AgeGroup,
		"children's stories",
		"moral lessons",
		"educational stories",
		"kids reading",
		strings.ToLower(story.Title),
	}, ", ")
}

// # Structured Data

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type searchAction struct {
	Type       string `json:"@type"`
	Target     string `json:"target"`
	QueryInput string `json:"query-input"`
}

type websiteSchema struct {
	Context         string       `json:"@context"`
	Type            string       `json:"@type"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	URL             string       `json:"url"`
	PotentialAction searchAction `json:"potentialAction"`
}

type articleSchema struct {
	Context        string       `json:"@context"`
	Type           string       `json:"@type"`
	Headline       string       `json:"headline"`
	Description    string       `json:"description"`
	Image          string       `json:"image,omitempty"`
	Author         organization `json:"author"`
	Publisher      organization `json:"publisher"`
	ArticleSection string       `json:"articleSection"`
	Keywords       string       `json:"keywords"`
	URL            string       `json:"url"`
}

type listItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type breadcrumbSchema struct {
	Context string     `json:"@context"`
	Type    string     `json:"@type"`
	Items   []listItem `json:"itemListElement"`
}

// WebsiteSchema describes the site and its search box.
func WebsiteSchema(baseURL string) any {
	return websiteSchema{
		Context:     "https://schema.org",
		Type:        "WebSite",
		Name:        siteName,
		Description: "Educational stories for children with moral lessons, interactive reading activities, and games.",
		URL:         baseURL,
		PotentialAction: searchAction{
			Type:       "SearchAction",
			Target:     baseURL + "/stories?q={search_term_string}",
			QueryInput: "required name=search_term_string",
		},
	}
}

// ArticleSchema describes a story page.
func ArticleSchema(baseURL string, story *content.Story) any {
	publisher := organization{Type: "Organization", Name: siteName}
	return articleSchema{
		Context:        "https://schema.org",
		Type:           "Article",
		Headline:       story.Title,
		Description:    story.Summary,
		Image:          story.ImageURL,
		Author:         publisher,
		Publisher:      publisher,
		ArticleSection: story.Category,
		Keywords:       strings.Join([]string{story.Category, story.AgeGroup, "children's stories", "moral lessons"}, ", "),
		URL:            baseURL + storyPath(story.ID),
	}
}

// BreadcrumbSchema mirrors the visible breadcrumb trail.
func BreadcrumbSchema(baseURL string, crumbs []Crumb) any {
	items := make([]listItem, len(crumbs))
	for index, crumb := range crumbs {
		items[index] = listItem{
			Type:     "ListItem",
			Position: index + 1,
			Name:     crumb.Label,
			Item:     baseURL + crumb.Href,
		}
	}
	return breadcrumbSchema{Context: "https://schema.org", Type: "BreadcrumbList", Items: items}
}

// jsonLD encodes documents for a script tag. json.Marshal escapes <, > and &,
// so the output cannot close the element early.
func jsonLD(documents ...any) []template.JS {
	encoded := make([]template.JS, 0, len(documents))
	for _, document := range documents {
		payload, err := json.Marshal(document)
		if err != nil {
			continue
		}
		encoded = append(encoded, template.JS(payload))
	}
	return encoded
}

// # Paths

func storyPath(id string) string { return "/story/" + id }
func seriesPath(id string) string { return "/series/" + id }
func chapterPath(seriesID, id string) string { return "/series/" + seriesID + "/chapter/" + id }
func quizPath(id string) string { return "/story-questions/" + id }
func spellingPath(id string) string { return "/spelling-game/" + id }
