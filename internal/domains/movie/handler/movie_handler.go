package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dialogue-backend/internal/domains/movie"
	"dialogue-backend/internal/domains/movie/service"
	"dialogue-backend/internal/shared/request"
	"dialogue-backend/internal/shared/response"
)

type MovieHandler struct {
	svc service.MovieService
}

func NewMovieHandler(svc service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// ListMovies - GET /movies
// Query params: name, sort, limit, offset
func (h *MovieHandler) ListMovies(c *gin.Context) {
	limit, err := request.IntQuery(c, "limit", 50)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	offset, err := request.IntQuery(c, "offset", 0)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	req := movie.ListMoviesRequest{
		Name:   c.Query("name"),
		Sort:   c.DefaultQuery("sort", movie.SortTitle),
		Limit:  limit,
		Offset: offset,
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		response.FromStatus(c, movie.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetMovie - GET /movies/:id
func (h *MovieHandler) GetMovie(c *gin.Context) {
	id, err := request.IntParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromStatus(c, movie.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, detail)
}
