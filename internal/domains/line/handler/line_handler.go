package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dialogue-backend/internal/domains/line"
	"dialogue-backend/internal/domains/line/service"
	"dialogue-backend/internal/shared/request"
	"dialogue-backend/internal/shared/response"
)

type LineHandler struct {
	svc service.LineService
}

func NewLineHandler(svc service.LineService) *LineHandler {
	return &LineHandler{svc: svc}
}

// ListLines - GET /lines
// Query params: text, name, sort, limit, offset
func (h *LineHandler) ListLines(c *gin.Context) {
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

	req := line.ListLinesRequest{
		Text:   c.Query("text"),
		Name:   c.Query("name"),
		Sort:   c.DefaultQuery("sort", line.SortMovie),
		Limit:  limit,
		Offset: offset,
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, err := h.svc.List(c.Request.Context(), req)
	if err != nil {
		response.FromStatus(c, line.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, items)
}

// GetLine - GET /lines/:id
func (h *LineHandler) GetLine(c *gin.Context) {
	id, err := request.IntParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromStatus(c, line.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, detail)
}
