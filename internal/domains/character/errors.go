package character

import (
	"errors"
	"net/http"

	"dialogue-backend/internal/shared/query"
)

var ErrCharacterNotFound = errors.New("character not found")

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrCharacterNotFound):
		return http.StatusNotFound
	case errors.Is(err, query.ErrUnknownSort),
		errors.Is(err, query.ErrNegativeLimit),
		errors.Is(err, query.ErrNegativeOffset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
