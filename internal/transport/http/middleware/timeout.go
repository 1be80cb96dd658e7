package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	resp "go-gin-blog-api/internal/transport/http/response"
)

// Timeout gives every request a deadline. Storage calls take the request
// context, so they fail with context.DeadlineExceeded once it passes.
func Timeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		return passThrough
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			resp.Abort(c, context.DeadlineExceeded)
		}
	}
}
