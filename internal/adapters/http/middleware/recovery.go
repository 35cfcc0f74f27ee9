package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/battulga/wordwall/internal/adapters/http/dto"
	"github.com/battulga/wordwall/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics.
// On panic, it logs the error with the full stack trace at ERROR level and
// returns a 500 with the standard error envelope. Applied first in the chain
// so it catches panics from all subsequent handlers and middleware.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()

				// Context logger carries the request ID when set.
				ctxLogger := logging.FromContext(c.Request.Context())

				ctxLogger.Error("panic recovered",
					slog.Any("error", r),
					slog.String("stack", string(stack)),
					slog.String("path", c.Request.URL.Path),
					slog.String("method", c.Request.Method),
				)

				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError,
						dto.NewErrorResponse("an internal error occurred"))
				} else {
					c.Abort()
				}
			}
		}()

		c.Next()
	}
}
