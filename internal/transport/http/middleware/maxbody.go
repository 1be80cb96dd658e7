package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps the request body. Readers past the cap fail with
// *http.MaxBytesError, which body guards answer with 413.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	if n <= 0 {
		return passThrough
	}
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
