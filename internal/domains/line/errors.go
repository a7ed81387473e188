package line

import (
	"errors"
	"net/http"

	"dialogue-backend/internal/shared/query"
)

var ErrLineNotFound = errors.New("line not found")

// GetHTTPStatusCode maps domain errors to HTTP status codes.
func GetHTTPStatusCode(err error) int {
	switch {
	case errors.Is(err, ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, query.ErrUnknownSort),
		errors.Is(err, query.ErrNegativeLimit),
		errors.Is(err, query.ErrNegativeOffset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
