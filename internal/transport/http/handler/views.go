package handler

import (
	"time"

	"go-gin-blog-api/internal/domain"
)

type UserView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func NewUserView(u *domain.User) *UserView {
	if u == nil {
		return nil
	}
	return &UserView{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}

type BlogView struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Content   string            `json:"content"`
	Status    domain.BlogStatus `json:"status"`
	Author    *UserView         `json:"author"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func NewBlogView(b *domain.Blog) BlogView {
	return BlogView{
		ID:        b.ID,
		Title:     b.Title,
		Content:   b.Content,
		Status:    b.Status,
		Author:    NewUserView(b.Author),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type BlogList struct {
	Blogs          []BlogView      `json:"blogs"`
	PaginationInfo domain.PageInfo `json:"paginationInfo"`
}

type UserList struct {
	Users          []UserView      `json:"users"`
	PaginationInfo domain.PageInfo `json:"paginationInfo"`
}

type Message struct {
	Message string `json:"message"`
}
