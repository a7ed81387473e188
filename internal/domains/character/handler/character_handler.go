package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dialogue-backend/internal/domains/character"
	"dialogue-backend/internal/domains/character/service"
	"dialogue-backend/internal/shared/request"
	"dialogue-backend/internal/shared/response"
)

type CharacterHandler struct {
	svc service.CharacterService
}

func NewCharacterHandler(svc service.CharacterService) *CharacterHandler {
	return &CharacterHandler{svc: svc}
}

// ListCharacters - GET /characters
// Query params: name, sort, limit, offset
func (h *CharacterHandler) ListCharacters(c *gin.Context) {
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

	req := character.ListCharactersRequest{
		Name:   c.Query("name"),
		Sort:   c.DefaultQuery("sort", character.SortName),
		Limit:  limit,
		Offset: offset,
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		response.FromStatus(c, character.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetCharacter - GET /characters/:id
func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	id, err := request.IntParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromStatus(c, character.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, detail)
}
