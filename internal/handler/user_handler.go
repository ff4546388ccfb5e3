package handler

import (
	"net/http"

	"messenger-api/internal/services"
	"messenger-api/internal/transport/httpdto"
	messenger_errors "messenger-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Search handles GET /v1/users?search=. X-User-Id is optional here.
func (h *UserHandler) Search(c *gin.Context) {
	var query httpdto.SearchUsersQuery
	if err := bindQuery(c, &query, "Missing search query", "Invalid search query"); err != nil {
		_ = c.Error(err)
		return
	}
	caller, err := callerID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	users, err := h.service.SearchUsers(c.Request.Context(), query.Search, caller)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.SearchUsersResponse{Users: httpdto.FromPublicProfiles(users)})
}

// UpdateProfile handles PUT /v1/users.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req httpdto.UpdateProfileRequest
	if err := bindJSON(c, &req, "Missing userId"); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), req.UserID, req.ToDomain())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.UpdateProfileResponse{User: httpdto.FromUser(user)})
}

// Block handles POST /v1/users, dispatching on the action field.
func (h *UserHandler) Block(c *gin.Context) {
	var req httpdto.BlockRequest
	if err := bindJSON(c, &req, "Missing blocker or blocked ID"); err != nil {
		_ = c.Error(err)
		return
	}

	var err error
	switch req.Action {
	case httpdto.ActionBlock:
		err = h.service.BlockUser(c.Request.Context(), req.Edge())
	case httpdto.ActionUnblock:
		err = h.service.UnblockUser(c.Request.Context(), req.Edge())
	default:
		err = messenger_errors.Invalid("Unknown action")
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.SuccessResponse{Success: true})
}
