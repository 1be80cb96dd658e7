package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog-api/internal/service"
	"go-gin-blog-api/internal/transport/http/handler"
)

// NewAPIEngine serves the public API under /api.
func NewAPIEngine(d Deps) *gin.Engine {
	r := newEngine(d)
	r.GET("/", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "up"}) })

	authSvc := service.NewAuthService(d.Users, d.JWT, d.Cfg.Security.BcryptCost, d.logger())
	blogSvc := service.NewBlogService(d.Blogs, d.logger())

	var reg Registry
	reg.Register(
		&authModule{
			h:       handler.NewAuthHandler(authSvc, d.Cfg.JWT.Header),
			jwt:     d.JWT,
			header:  d.Cfg.JWT.Header,
			emails:  service.EmailLookup(d.Users),
			signout: d.JWT.Revoked != nil,
		},
		&blogModule{
			h:      handler.NewBlogHandler(blogSvc),
			jwt:    d.JWT,
			header: d.Cfg.JWT.Header,
			titles: service.TitleLookup(d.Blogs),
		},
	)
	reg.MountAllAPI(r.Group("/api"))
	return r
}
