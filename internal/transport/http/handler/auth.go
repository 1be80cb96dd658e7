package handler

import (
	"github.com/gin-gonic/gin"

	"go-gin-blog-api/internal/service"
	mdw "go-gin-blog-api/internal/transport/http/middleware"
)

type AuthHandler struct {
	svc    *service.AuthService
	header string
}

// NewAuthHandler returns tokens in the response header named header.
func NewAuthHandler(svc *service.AuthService, header string) *AuthHandler {
	return &AuthHandler{svc: svc, header: header}
}

func (h *AuthHandler) Signup(c *gin.Context) (*UserView, error) {
	in := mdw.BodyFrom[service.SignupInput](c)
	u, token, err := h.svc.Signup(c.Request.Context(), *in)
	if err != nil {
		return nil, err
	}
	c.Header(h.header, token)
	return NewUserView(u), nil
}

func (h *AuthHandler) Signin(c *gin.Context) (Message, error) {
	in := mdw.BodyFrom[service.CredentialsInput](c)
	token, err := h.svc.Signin(c.Request.Context(), *in)
	if err != nil {
		return Message{}, err
	}
	c.Header(h.header, token)
	return Message{Message: "Signed in"}, nil
}

func (h *AuthHandler) Signout(c *gin.Context) (Message, error) {
	claims, _ := mdw.ClaimsFrom(c)
	if err := h.svc.Signout(c.Request.Context(), claims); err != nil {
		return Message{}, err
	}
	return Message{Message: "Signed out"}, nil
}
