// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package site

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/taibuivan/storytime/internal/content"
)

// StaticRoutes are the crawlable pages that exist regardless of content.
var StaticRoutes = []string{"", "/stories", "/series", "/about", "/contact", "/privacy", "/terms"}

// DisallowedPaths are excluded from crawling.
var DisallowedPaths = []string{"/studio", "/api/"}

const (
	changeFrequency = "weekly"
	homePriority    = "1.0"
	pagePriority    = "0.7"
	sitemapXMLNS    = "http://www.sitemaps.org/schemas/sitemap/0.9"
)

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Location        string `xml:"loc"`
	LastModified    string `xml:"lastmod"`
	ChangeFrequency string `xml:"changefreq"`
	Priority        string `xml:"priority"`
}

// Sitemap is a sitemaps.org <urlset>.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

/*
BuildSitemap lists the static routes followed by every valid story and
series detail page.

Parameters:
  - baseURL: string (Public origin, without trailing slash)
  - stories: []*content.Story
  - series: []*content.Series
  - now: time.Time (Reported as the last modification)
*/
func BuildSitemap(baseURL string, stories []*content.Story, series []*content.Series, now time.Time) Sitemap {
	baseURL = strings.TrimRight(baseURL, "/")
	modified := now.UTC().Format(time.RFC3339)

	entry := func(path string) SitemapURL {
		priority := pagePriority
		if path == "" {
			priority = homePriority
		}
		return SitemapURL{
			Location:        baseURL + path,
			LastModified:    modified,
			ChangeFrequency: changeFrequency,
			Priority:        priority,
		}
	}

	sitemap := Sitemap{XMLNS: sitemapXMLNS}
	for _, path := range StaticRoutes {
		sitemap.URLs = append(sitemap.URLs, entry(path))
	}
	for _, story := range stories {
		if story.Valid() {
			sitemap.URLs = append(sitemap.URLs, entry(storyPath(story.ID)))
		}
	}
	for _, item := range series {
		if item.Valid() {
			sitemap.URLs = append(sitemap.URLs, entry(seriesPath(item.ID)))
		}
	}

	return sitemap
}

// WriteTo writes the XML document including its header.
func (sitemap Sitemap) WriteTo(writer io.Writer) (int64, error) {
	payload, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("site: failed to encode sitemap: %w", err)
	}

	written, err := io.WriteString(writer, xml.Header+string(payload)+"\n")
	return int64(written), err
}

// Robots renders robots.txt.
func Robots(baseURL string) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	for _, path := range DisallowedPaths {
		builder.WriteString("Disallow: " + path + "\n")
	}
	builder.WriteString("\nSitemap: " + strings.TrimRight(baseURL, "/") + "/sitemap.xml\n")
	return builder.String()
}
