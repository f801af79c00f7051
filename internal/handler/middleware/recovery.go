package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"aiptrack/backend/pkg/response"
)

// Recovery turns panics into a 500 and forwards them to Sentry when a
// client is configured.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				if hub := sentry.CurrentHub(); hub.Client() != nil {
					hub = hub.Clone()
					hub.Scope().SetRequest(c.Request)
					hub.RecoverWithContext(c.Request.Context(), err)
					hub.Flush(2 * time.Second)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorBody{
					Error: "internal server error",
				})
			}
		}()
		c.Next()
	}
}

// CaptureServerErrors reports 5xx answers that did not come from a panic.
func CaptureServerErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		status := c.Writer.Status()
		if status < http.StatusInternalServerError || status == http.StatusNotImplemented {
			return
		}
		hub := sentry.CurrentHub()
		if hub.Client() == nil {
			return
		}
		hub = hub.Clone()
		hub.Scope().SetRequest(c.Request)
		if len(c.Errors) > 0 {
			hub.CaptureException(c.Errors.Last().Err)
			return
		}
		hub.CaptureMessage(fmt.Sprintf("%s %s answered %d", c.Request.Method, c.FullPath(), status))
	}
}
