package conversation

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// LineInput is one utterance of a new conversation, in speaking order.
type LineInput struct {
	CharacterID int    `json:"character_id"`
	Text        string `json:"line_text"`
}

func (l LineInput) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.CharacterID, validation.Required, validation.Min(1)),
	)
}

// AddConversationRequest is the body of POST /movies/:id/conversations.
// Emptiness of Lines is deliberately not validated here: it is a
// semantic rule of the writer and must answer 422, not 400.
type AddConversationRequest struct {
	Character1ID int         `json:"character_1_id"`
	Character2ID int         `json:"character_2_id"`
	Lines        []LineInput `json:"lines"`
}

func (r AddConversationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Character1ID, validation.Required, validation.Min(1)),
		validation.Field(&r.Character2ID, validation.Required, validation.Min(1)),
		validation.Field(&r.Lines),
	)
}

// CreateResult is the body returned after a successful insert.
type CreateResult struct {
	ConversationID int `json:"conversation_id"`
}

// LineEntry is one line of a conversation detail, in line_sort order.
type LineEntry struct {
	LineID    int    `json:"line_id"`
	Character string `json:"character"`
	Text      string `json:"text"`
}

// Detail is the body of GET /conversations/:id.
type Detail struct {
	ConversationID int         `json:"conversation_id"`
	Movie          string      `json:"movie"`
	Lines          []LineEntry `json:"lines"`
}
