package middleware

import (
	"github.com/gin-gonic/gin"

	"go-gin-blog-api/internal/core/auth"
	resp "go-gin-blog-api/internal/transport/http/response"
)

const keyClaims = "auth.claims"

// Authenticate verifies the token in header and stores its claims for the
// rest of the chain.
func Authenticate(j *auth.JWTer, header string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := j.Authenticate(c.Request.Context(), c.GetHeader(header))
		if err != nil {
			resp.Abort(c, err)
			return
		}
		c.Set(keyClaims, claims)
		c.Next()
	}
}

// ClaimsFrom returns what Authenticate stored, if it ran.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(keyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		if !auth.IsAdmin(claims) {
			resp.Abort(c, resp.Forbidden(resp.MsgAccessDenied))
			return
		}
		c.Next()
	}
}
