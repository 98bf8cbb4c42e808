package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"storefront/apperror"
	"storefront/logger"
	"storefront/models"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a JSON 500 and logs the stack trace.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.FromContext(c.Request.Context()).Error("panic recovered",
					"error", fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
					Success: false,
					Message: "internal server error",
					Code:    string(apperror.KindInternal),
				})
			}
		}()
		c.Next()
	}
}
