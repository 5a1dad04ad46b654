package middleware

import (
	"github.com/gin-gonic/gin"

	"pollbox/internal/transport/httpdto"
	"pollbox/pkg/logger"
)

// ErrorHandler logs every error handlers attach via c.Error. Handlers
// normally render their own error body; the fallback JSON write only
// happens when one aborted without writing a response.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.Errorf("request error: %s", err.Error())
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(c.Writer.Status(), httpdto.NewErrorResponse(err.Error(), "INTERNAL_ERROR"))
	}
}
