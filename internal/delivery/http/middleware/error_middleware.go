package middleware

import (
	"errors"
	"net/http"

	"go-talentpool-backend/internal/delivery/http/response"
	"go-talentpool-backend/pkg/apperror"
	"go-talentpool-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns errors collected on the context into JSON responses.
// AppError codes and messages pass through; anything else is logged and
// collapsed to a generic 500 so internal details never reach clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code == http.StatusInternalServerError {
				logger.Log.Error("internal error", "error", err, "path", c.Request.URL.Path)
			}
			response.Send(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		logger.Log.Error("unexpected error", "error", err, "path", c.Request.URL.Path)
		response.Send(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
