package schema

// ContentStoryTable represents the 'content.story' table
type ContentStoryTable struct {
	Table       string
	ID          string
	Title       string
	Summary     string
	MoralLesson string
	AgeGroup    string
	ReadingTime string
	Category    string
	ImageURL    string
	VideoURL    string
	Position    string
	CreatedAt   string
}

// ContentStory is the schema definition for content.story
var ContentStory = ContentStoryTable{
	Table:       "content.story",
	ID:          "id",
	Title:       "title",
	Summary:     "summary",
	MoralLesson: "morallesson",
	AgeGroup:    "agegroup",
	ReadingTime: "readingtime",
	Category:    "category",
	ImageURL:    "imageurl",
	VideoURL:    "videourl",
	Position:    "position",
	CreatedAt:   "createdat",
}

func (t ContentStoryTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Summary, t.MoralLesson, t.AgeGroup, t.ReadingTime,
		t.Category, t.ImageURL, t.VideoURL, t.Position, t.CreatedAt,
	}
}
