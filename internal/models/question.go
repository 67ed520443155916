package models

// LocalizedText holds the bilingual variants of a prompt, option or
// explanation. Either field may be empty when the backend has only one
// language for an item.
type LocalizedText struct {
	English string `json:"english"`
	Tamil   string `json:"tamil"`
}

// String renders both variants side by side, skipping whichever is empty.
func (t LocalizedText) String() string {
	switch {
	case t.English != "" && t.Tamil != "":
		return t.English + " / " + t.Tamil
	case t.Tamil != "":
		return t.Tamil
	default:
		return t.English
	}
}

// QuestionType classifies a question kind.
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "single-choice"
	QuestionTypeMatch        QuestionType = "match-the-following"
)

// Question is one item of a test's question set. CorrectAnswer is a 0-based
// index into Options; the same convention is used for captured answers,
// scoring and review highlighting. Immutable once fetched for an attempt.
type Question struct {
	ID            string        `json:"_id"`
	Prompt        LocalizedText `json:"question"`
	Options       []LocalizedText `json:"options"`
	CorrectAnswer int           `json:"correctAnswer"`
	Explanation   LocalizedText `json:"explanation"`
	ImageURL      *string       `json:"image,omitempty"`
	Type          QuestionType  `json:"questionType,omitempty"`
}
