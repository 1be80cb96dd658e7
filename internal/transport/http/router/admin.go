package router

import (
	"github.com/gin-gonic/gin"

	"go-gin-blog-api/internal/service"
	"go-gin-blog-api/internal/transport/http/handler"
	mdw "go-gin-blog-api/internal/transport/http/middleware"
)

// NewAdminEngine serves operator endpoints under /admin/v1; every route
// requires an administrator token.
func NewAdminEngine(d Deps) *gin.Engine {
	r := newEngine(d)

	admin := r.Group("/admin/v1")
	admin.Use(mdw.Authenticate(d.JWT, d.Cfg.JWT.Header), mdw.RequireAdmin())

	var reg Registry
	reg.Register(&usersModule{h: handler.NewAdminHandler(service.NewUserService(d.Users))})
	reg.MountAllAdmin(admin)
	return r
}
