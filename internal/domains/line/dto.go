package line

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sort keys accepted by the lines list endpoint.
const (
	SortCharacter    = "character"
	SortMovie        = "movie"
	SortConversation = "conversation"
)

// ListLinesRequest carries the query parameters of GET /lines. Text
// filters the spoken line, Name the speaking character.
type ListLinesRequest struct {
	Text   string
	Name   string
	Sort   string
	Limit  int
	Offset int
}

func (r ListLinesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sort, validation.Required, validation.In(SortCharacter, SortMovie, SortConversation)),
		validation.Field(&r.Limit, validation.Min(0)),
		validation.Field(&r.Offset, validation.Min(0)),
	)
}

// ListItem is one row of GET /lines.
type ListItem struct {
	LineID     int    `json:"line_id"`
	MovieTitle string `json:"movie_title"`
	Character  string `json:"character"`
	Text       string `json:"text"`
}

// Detail is the body of GET /lines/:id. Recipient is the participant
// of the line's conversation who is not speaking.
type Detail struct {
	LineID         int    `json:"line_id"`
	ConversationID int    `json:"conversation_id"`
	Movie          string `json:"movie"`
	Character      string `json:"character"`
	Recipient      string `json:"recipient"`
	Text           string `json:"text"`
}
