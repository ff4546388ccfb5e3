package handler

import (
	"net/http"

	"messenger-api/internal/services"
	"messenger-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) List(c *gin.Context) {
	var query httpdto.ListMessagesQuery
	if err := bindQuery(c, &query, "Missing chatId", "Invalid chatId"); err != nil {
		_ = c.Error(err)
		return
	}

	messages, err := h.service.ListMessages(c.Request.Context(), query.ChatID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.ListMessagesResponse{Messages: httpdto.FromMessages(messages)})
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req httpdto.SendMessageRequest
	if err := bindJSON(c, &req, "Missing required fields"); err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := h.service.SendMessage(c.Request.Context(), req.ToDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.SendMessageResponse{ID: msg.ID, CreatedAt: msg.CreatedAt})
}
