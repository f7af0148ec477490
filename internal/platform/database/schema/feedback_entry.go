package schema

// FeedbackEntryTable represents the 'feedback.entry' table
type FeedbackEntryTable struct {
	Table     string
	ID        string
	Rating    string
	Message   string
	Email     string
	Page      string
	Story     string
	UserAgent string
	CreatedAt string
}

// FeedbackEntry is the schema definition for feedback.entry
var FeedbackEntry = FeedbackEntryTable{
	Table:     "feedback.entry",
	ID:        "id",
	Rating:    "rating",
	Message:   "message",
	Email:     "email",
	Page:      "page",
	Story:     "story",
	UserAgent: "useragent",
	CreatedAt: "createdat",
}

func (t FeedbackEntryTable) Columns() []string {
	return []string{t.ID, t.Rating, t.Message, t.Email, t.Page, t.Story, t.UserAgent, t.CreatedAt}
}
