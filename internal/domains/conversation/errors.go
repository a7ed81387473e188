package conversation

import (
	"errors"
	"net/http"
)

// Not found
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrCharacterNotFound    = errors.New("character not found")
)

// Semantic violations of the writer; the referenced entities exist but
// the requested conversation is not a legal one.
var (
	ErrSameCharacter        = errors.New("a character cannot talk to themself")
	ErrCharacterNotInMovie  = errors.New("movie does not include one or both characters")
	ErrCrossMovieCharacters = errors.New("characters come from different movies")
	ErrEmptyConversation    = errors.New("a conversation needs at least one line")
	ErrLineSpeakerNotInPair = errors.New("line character is not part of the conversation")
)

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrConversationNotFound),
		errors.Is(err, ErrCharacterNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrSameCharacter),
		errors.Is(err, ErrCharacterNotInMovie),
		errors.Is(err, ErrCrossMovieCharacters),
		errors.Is(err, ErrEmptyConversation),
		errors.Is(err, ErrLineSpeakerNotInPair):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
