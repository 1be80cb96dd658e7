package handler

import (
	"github.com/gin-gonic/gin"

	"go-gin-blog-api/internal/service"
	mdw "go-gin-blog-api/internal/transport/http/middleware"
)

type AdminHandler struct {
	users *service.UserService
}

func NewAdminHandler(users *service.UserService) *AdminHandler {
	return &AdminHandler{users: users}
}

func (h *AdminHandler) ListUsers(c *gin.Context) (UserList, error) {
	q := mdw.QueryFrom[service.PageQuery](c)
	users, info, err := h.users.List(c.Request.Context(), q.Page())
	if err != nil {
		return UserList{}, err
	}
	out := UserList{Users: make([]UserView, 0, len(users)), PaginationInfo: info}
	for i := range users {
		out.Users = append(out.Users, *NewUserView(&users[i]))
	}
	return out, nil
}
