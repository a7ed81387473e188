package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dialogue-backend/internal/domains/conversation"
	"dialogue-backend/internal/domains/conversation/service"
	"dialogue-backend/internal/shared/request"
	"dialogue-backend/internal/shared/response"
)

type ConversationHandler struct {
	svc service.ConversationService
}

func NewConversationHandler(svc service.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

// GetConversation - GET /conversations/:id
func (h *ConversationHandler) GetConversation(c *gin.Context) {
	id, err := request.IntParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	detail, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromStatus(c, conversation.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// AddConversation - POST /movies/:id/conversations
func (h *ConversationHandler) AddConversation(c *gin.Context) {
	movieID, err := request.IntParam(c, "id")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req conversation.AddConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.svc.Add(c.Request.Context(), movieID, req)
	if err != nil {
		response.FromStatus(c, conversation.GetHTTPStatusCode(err), err.Error())
		return
	}
	response.Success(c, http.StatusCreated, result)
}
