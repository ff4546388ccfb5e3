package handler

import (
	"net/http"

	"messenger-api/internal/services"
	"messenger-api/internal/transport/httpdto"
	messenger_errors "messenger-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// List handles GET /v1/chats for the caller named by X-User-Id.
func (h *ChatHandler) List(c *gin.Context) {
	caller, err := callerID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if caller == nil {
		_ = c.Error(messenger_errors.Invalid("Missing X-User-Id header"))
		return
	}

	chats, err := h.service.ListChats(c.Request.Context(), *caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.ListChatsResponse{Chats: httpdto.FromChatSummaries(chats)})
}

// CreateOrGet handles POST /v1/chats.
func (h *ChatHandler) CreateOrGet(c *gin.Context) {
	var req httpdto.CreateChatRequest
	if err := bindJSON(c, &req, "Missing user IDs"); err != nil {
		_ = c.Error(err)
		return
	}

	chatID, err := h.service.CreateOrGetChat(c.Request.Context(), req.User1ID, req.User2ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.CreateChatResponse{ChatID: chatID})
}
