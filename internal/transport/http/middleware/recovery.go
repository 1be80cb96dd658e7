package middleware

import (
	"fmt"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	resp "go-gin-blog-api/internal/transport/http/response"
)

// Recovery logs panics with their stack and answers with the regular 500 body.
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, rec any) {
		resp.Abort(c, fmt.Errorf("panic: %v", rec))
	})
}
