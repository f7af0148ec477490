package schema

// ContentVocabularyTable represents the 'content.vocabulary' table
type ContentVocabularyTable struct {
	Table         string
	StoryID       string
	Position      string
	Word          string
	Definition    string
	Pronunciation string
}

// ContentVocabulary is the schema definition for content.vocabulary
var ContentVocabulary = ContentVocabularyTable{
	Table:         "content.vocabulary",
	StoryID:       "storyid",
	Position:      "position",
	Word:          "word",
	Definition:    "definition",
	Pronunciation: "pronunciation",
}

func (t ContentVocabularyTable) Columns() []string {
	return []string{t.StoryID, t.Position, t.Word, t.Definition, t.Pronunciation}
}
