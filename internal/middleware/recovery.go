package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"ticket-srv/pkg/log"
	"ticket-srv/pkg/response"
)

// Recovery recovers from handler panics and converts them into 500 responses.
func Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "Panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				response.Error(c, fmt.Errorf("panic: %v", err))
				c.Abort()
			}
		}()
		c.Next()
	}
}
