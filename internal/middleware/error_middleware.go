package middleware

import (
	"errors"
	"net/http"

	"messenger-api/internal/transport/httpdto"
	messenger_errors "messenger-api/pkg/errors"
	"messenger-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatusFor maps an error kind to the HTTP status it is reported with.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, messenger_errors.ErrInvalidInput),
		errors.Is(err, messenger_errors.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, messenger_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, messenger_errors.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler renders the last error pushed with c.Error as {"error": msg}.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := StatusFor(err)
		if status == http.StatusInternalServerError && l != nil {
			l.ErrorCtx(c.Request.Context(), "request failed", zap.Error(err))
		}
		c.JSON(status, httpdto.NewErrorResponse(err.Error()))
	}
}
