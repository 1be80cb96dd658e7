package service

import (
	"strings"

	"go-gin-blog-api/internal/domain"
)

type SignupInput struct {
	Name     string `json:"name" validate:"required,min=5,max=50"`
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=8,upper,digit,nospace" msg_min:"Password must be at least 8 characters long" msg_upper:"Password must contain at least 1 uppercase letter" msg_digit:"Password must contain at least 1 number" msg_nospace:"Password must not contain white spaces"`
}

func (in *SignupInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// CredentialsInput applies the signup password rules, so a weak password is
// rejected before any lookup.
type CredentialsInput struct {
	Email    string `json:"email" validate:"required,min=5,max=255,email"`
	Password string `json:"password" validate:"required,min=8,upper,digit,nospace" msg_min:"Password must be at least 8 characters long" msg_upper:"Password must contain at least 1 uppercase letter" msg_digit:"Password must contain at least 1 number" msg_nospace:"Password must not contain white spaces"`
}

func (in *CredentialsInput) Normalize() {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
}

// BlogInput is the body of both create and update. A nil Status means
// "published" on create and "unchanged" on update.
type BlogInput struct {
	Title   string  `json:"title" validate:"required,min=5,max=1000"`
	Content string  `json:"content" validate:"required,min=5,max=10000"`
	Status  *string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func (in *BlogInput) Normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
}

type PageQuery struct {
	PageNumber *int `form:"pageNumber" validate:"omitempty,min=1,max=99999" msg:"Invalid page number"`
	PageSize   *int `form:"pageSize" validate:"omitempty,min=1,max=100" msg:"Invalid page size"`
}

func (q *PageQuery) Page() domain.Page { return domain.NewPage(q.PageNumber, q.PageSize) }
