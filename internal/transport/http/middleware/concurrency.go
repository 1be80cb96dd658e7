package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	resp "go-gin-blog-api/internal/transport/http/response"
)

// ConcurrencyLimit caps requests in flight. A request that gives up waiting
// (client gone or deadline hit) gets 503.
func ConcurrencyLimit(max int64) gin.HandlerFunc {
	if max <= 0 {
		return passThrough
	}
	sem := semaphore.NewWeighted(max)
	return func(c *gin.Context) {
		if err := sem.Acquire(c.Request.Context(), 1); err != nil {
			resp.Abort(c, resp.Status(http.StatusServiceUnavailable))
			return
		}
		defer sem.Release(1)
		c.Next()
	}
}

func passThrough(c *gin.Context) { c.Next() }
