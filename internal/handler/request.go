// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	"messenger-api/internal/middleware"
	messenger_errors "messenger-api/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var errInvalidJSON = messenger_errors.Invalid("Invalid JSON")

// bindJSON decodes the body into dst, treating an absent body as {}.
// Tag validation failures are reported with missingMsg.
func bindJSON(c *gin.Context, dst any, missingMsg string) error {
	var body []byte
	if c.Request.Body != nil {
		var err error
		if body, err = io.ReadAll(c.Request.Body); err != nil {
			return errInvalidJSON
		}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}
	if err := binding.JSON.BindBody(body, dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return messenger_errors.Invalid(missingMsg)
		}
		return errInvalidJSON
	}
	return nil
}

// callerID reads X-User-Id. An absent header yields nil; a malformed or non-positive one is rejected.
func callerID(c *gin.Context) (*int64, error) {
	raw := c.GetHeader(middleware.UserIDHeader)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, messenger_errors.Invalid("Invalid X-User-Id header")
	}
	return &id, nil
}

// bindQuery binds query parameters into dst. A missing or failing-tag parameter is reported
// with missingMsg, one that cannot be parsed with invalidMsg.
func bindQuery(c *gin.Context, dst any, missingMsg, invalidMsg string) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return messenger_errors.Invalid(missingMsg)
		}
		return messenger_errors.Invalid(invalidMsg)
	}
	return nil
}
