package schema

// ContentSectionTable represents the 'content.section' table.
// A section belongs to either a story or a chapter.
type ContentSectionTable struct {
	Table     string
	StoryID   string
	SeriesID  string
	ChapterID string
	Position  string
	Text      string
	ImageURL  string
}

// ContentSection is the schema definition for content.section
var ContentSection = ContentSectionTable{
	Table:     "content.section",
	StoryID:   "storyid",
	SeriesID:  "seriesid",
	ChapterID: "chapterid",
	Position:  "position",
	Text:      "body",
	ImageURL:  "imageurl",
}

func (t ContentSectionTable) Columns() []string {
	return []string{t.StoryID, t.SeriesID, t.ChapterID, t.Position, t.Text, t.ImageURL}
}
