package schema

// ContentChapterTable represents the 'content.chapter' table
type ContentChapterTable struct {
	Table         string
	ID            string
	SeriesID      string
	ChapterNumber string
	Title         string
	Summary       string
	IsPublished   string
	PublishDate   string
	ReadingTime   string
	ImageURL      string
}

// ContentChapter is the schema definition for content.chapter
var ContentChapter = ContentChapterTable{
	Table:         "content.chapter",
	ID:            "id",
	SeriesID:      "seriesid",
	ChapterNumber: "chapternumber",
	Title:         "title",
	Summary:       "summary",
	IsPublished:   "ispublished",
	PublishDate:   "publishdate",
	ReadingTime:   "readingtime",
	ImageURL:      "imageurl",
}

func (t ContentChapterTable) Columns() []string {
	return []string{
		t.ID, t.SeriesID, t.ChapterNumber, t.Title, t.Summary,
		t.IsPublished, t.PublishDate, t.ReadingTime, t.ImageURL,
	}
}
