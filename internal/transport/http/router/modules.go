package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-blog-api/internal/core/auth"
	"go-gin-blog-api/internal/service"
	"go-gin-blog-api/internal/transport/http/ez"
	"go-gin-blog-api/internal/transport/http/handler"
	mdw "go-gin-blog-api/internal/transport/http/middleware"
)

type authModule struct {
	h       *handler.AuthHandler
	jwt     *auth.JWTer
	header  string
	emails  service.Lookup
	signout bool
}

func (m *authModule) Priority() int { return 10 }

func (m *authModule) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/auth"))

	ez.Register(e, ez.Action[*handler.UserView]{
		Method: http.MethodPost,
		Path:   "/signup",
		Guards: []gin.HandlerFunc{
			mdw.ValidateBody[service.SignupInput](),
			mdw.Unique("email", m.emails, func(in *service.SignupInput) string { return in.Email }, ""),
		},
		Status:  http.StatusCreated,
		Handler: m.h.Signup,
	})
	ez.Register(e, ez.Action[handler.Message]{
		Method:  http.MethodPost,
		Path:    "/signin",
		Guards:  []gin.HandlerFunc{mdw.ValidateBody[service.CredentialsInput]()},
		Handler: m.h.Signin,
	})
	if m.signout {
		ez.Register(e, ez.Action[handler.Message]{
			Method:  http.MethodPost,
			Path:    "/signout",
			Guards:  []gin.HandlerFunc{mdw.Authenticate(m.jwt, m.header)},
			Handler: m.h.Signout,
		})
	}
}

type blogModule struct {
	h      *handler.BlogHandler
	jwt    *auth.JWTer
	header string
	titles service.Lookup
}

func (m *blogModule) MountAPI(api *gin.RouterGroup) {
	e := ez.New(api.Group("/blogs"))
	authn := mdw.Authenticate(m.jwt, m.header)
	title := func(in *service.BlogInput) string { return in.Title }

	ez.Register(e, ez.Action[handler.BlogList]{
		Method:  http.MethodGet,
		Path:    "",
		Guards:  []gin.HandlerFunc{mdw.ValidateQuery[service.PageQuery]()},
		Handler: m.h.List,
	})
	ez.Register(e, ez.Action[handler.BlogView]{
		Method: http.MethodPost,
		Path:   "",
		Guards: []gin.HandlerFunc{
			authn,
			mdw.ValidateBody[service.BlogInput](),
			mdw.Unique("title", m.titles, title, ""),
		},
		Status:  http.StatusCreated,
		Handler: m.h.Create,
	})
	ez.Register(e, ez.Action[handler.BlogView]{
		Method: http.MethodPut,
		Path:   "/:id",
		Guards: []gin.HandlerFunc{
			authn,
			mdw.ValidID("id"),
			mdw.ValidateBody[service.BlogInput](),
			mdw.Unique("title", m.titles, title, "id"),
		},
		Handler: m.h.Update,
	})
	ez.Register(e, ez.Action[handler.Message]{
		Method:  http.MethodDelete,
		Path:    "/:id",
		Guards:  []gin.HandlerFunc{authn, mdw.RequireAdmin(), mdw.ValidID("id")},
		Handler: m.h.Delete,
	})
}

type usersModule struct {
	h *handler.AdminHandler
}

func (m *usersModule) MountAdmin(admin *gin.RouterGroup) {
	ez.Register(ez.New(admin), ez.Action[handler.UserList]{
		Method:  http.MethodGet,
		Path:    "/users",
		Guards:  []gin.HandlerFunc{mdw.ValidateQuery[service.PageQuery]()},
		Handler: m.h.ListUsers,
	})
}
