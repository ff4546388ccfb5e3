package handler

import (
	"net/http"

	"messenger-api/internal/services"
	"messenger-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	service *services.UploadService
}

func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Avatar handles POST /v1/upload.
func (h *UploadHandler) Avatar(c *gin.Context) {
	var req httpdto.UploadAvatarRequest
	if err := bindJSON(c, &req, "Missing file data"); err != nil {
		_ = c.Error(err)
		return
	}

	url, err := h.service.UploadAvatar(c.Request.Context(), req.File, req.Type)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.UploadAvatarResponse{URL: url})
}
