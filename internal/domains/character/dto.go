package character

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Sort keys accepted by the characters list endpoint.
const (
	SortName  = "character"
	SortMovie = "movie"
	SortLines = "number_of_lines"
)

// ListCharactersRequest carries the query parameters of GET /characters.
type ListCharactersRequest struct {
	Name   string
	Sort   string
	Limit  int
	Offset int
}

func (r ListCharactersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Sort, validation.Required, validation.In(SortName, SortMovie, SortLines)),
		validation.Field(&r.Limit, validation.Min(0)),
		validation.Field(&r.Offset, validation.Min(0)),
	)
}

// ListItem is one row of GET /characters.
type ListItem struct {
	CharacterID   int    `json:"character_id"`
	Character     string `json:"character"`
	Movie         string `json:"movie"`
	NumberOfLines int    `json:"number_of_lines"`
}

// TopConversation is one partner entry of a character detail, ranked
// by the number of lines the two characters share.
type TopConversation struct {
	CharacterID           int     `json:"character_id"`
	Character             string  `json:"character"`
	Gender                *string `json:"gender"`
	NumberOfLinesTogether int     `json:"number_of_lines_together"`
}

// Detail is the body of GET /characters/:id. Gender is null when the
// corpus does not record one.
type Detail struct {
	CharacterID      int               `json:"character_id"`
	Character        string            `json:"character"`
	Movie            string            `json:"movie"`
	Gender           *string           `json:"gender"`
	TopConversations []TopConversation `json:"top_conversations"`
}

// NullableGender maps the corpus encoding ("" = unknown) to the JSON
// null the API promises.
func NullableGender(gender string) *string {
	if gender == "" {
		return nil
	}
	return &gender
}
