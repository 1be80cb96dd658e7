package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"go-gin-blog-api/internal/domain"
	"go-gin-blog-api/internal/service"
	mdw "go-gin-blog-api/internal/transport/http/middleware"
	resp "go-gin-blog-api/internal/transport/http/response"
)

type BlogHandler struct {
	svc *service.BlogService
}

func NewBlogHandler(svc *service.BlogService) *BlogHandler { return &BlogHandler{svc: svc} }

func (h *BlogHandler) List(c *gin.Context) (BlogList, error) {
	q := mdw.QueryFrom[service.PageQuery](c)
	blogs, info, err := h.svc.List(c.Request.Context(), q.Page())
	if err != nil {
		return BlogList{}, err
	}
	out := BlogList{Blogs: make([]BlogView, 0, len(blogs)), PaginationInfo: info}
	for i := range blogs {
		out.Blogs = append(out.Blogs, NewBlogView(&blogs[i]))
	}
	return out, nil
}

func (h *BlogHandler) Create(c *gin.Context) (BlogView, error) {
	claims, _ := mdw.ClaimsFrom(c)
	in := mdw.BodyFrom[service.BlogInput](c)
	b, err := h.svc.Create(c.Request.Context(), claims, *in)
	if err != nil {
		return BlogView{}, err
	}
	return NewBlogView(b), nil
}

func (h *BlogHandler) Update(c *gin.Context) (BlogView, error) {
	claims, _ := mdw.ClaimsFrom(c)
	in := mdw.BodyFrom[service.BlogInput](c)
	b, err := h.svc.Update(c.Request.Context(), claims, c.Param("id"), *in)
	if err != nil {
		return BlogView{}, blogNotFound(err)
	}
	return NewBlogView(b), nil
}

func (h *BlogHandler) Delete(c *gin.Context) (Message, error) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		return Message{}, blogNotFound(err)
	}
	return Message{Message: "Blog deleted"}, nil
}

func blogNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return resp.NotFound(resp.MsgBlogNotFound)
	}
	return err
}
