package schema

// ContentSeriesTable represents the 'content.series' table
type ContentSeriesTable struct {
	Table           string
	ID              string
	Title           string
	Description     string
	Category        string
	AgeGroup        string
	Status          string
	PublishSchedule string
	CoverImageURL   string
	Tags            string
	TotalChapters   string
	Rating          string
	Subscribers     string
	Position        string
	CreatedAt       string
}

// ContentSeries is the schema definition for content.series
var ContentSeries = ContentSeriesTable{
	Table:           "content.series",
	ID:              "id",
	Title:           "title",
	Description:     "description",
	Category:        "category",
	AgeGroup:        "agegroup",
	Status:          "status",
	PublishSchedule: "publishschedule",
	CoverImageURL:   "coverimageurl",
	Tags:            "tags",
	TotalChapters:   "totalchapters",
	Rating:          "rating",
	Subscribers:     "subscribers",
	Position:        "position",
	CreatedAt:       "createdat",
}

func (t ContentSeriesTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Description, t.Category, t.AgeGroup, t.Status, t.PublishSchedule,
		t.CoverImageURL, t.Tags, t.TotalChapters, t.Rating, t.Subscribers, t.Position, t.CreatedAt,
	}
}
