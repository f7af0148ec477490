// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"net/url"
	"strings"
)

const youTubeEmbedBase = "https://www.youtube.com/embed/"

// YouTubeEmbedURL converts a YouTube watch, short or embed link into an embed
// URL. Anything it does not recognise yields "".
func YouTubeEmbedURL(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || parsed.Host == "" {
		return ""
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.Trim(parsed.Path, "/")

	var id string
	switch host {
	case "youtu.be":
		id = path
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case path == "watch":
			id = parsed.Query().Get("v")
		case strings.HasPrefix(path, "embed/"):
			id = strings.TrimPrefix(path, "embed/")
		case strings.HasPrefix(path, "shorts/"):
			id = strings.TrimPrefix(path, "shorts/")
		}
	}

	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return youTubeEmbedBase + id
}
