package service

import (
	"context"
	"fmt"
	"strings"

	"go-gin-blog-api/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context, p domain.Page) ([]domain.User, domain.PageInfo, error) {
	users, total, err := s.users.List(ctx, p.Offset(), p.Size)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("list users: %w", err)
	}
	return users, domain.NewPageInfo(p, total), nil
}

// SetAdmin grants or withdraws the administrator flag. Tokens issued before
// the change keep the old flag until they expire.
func (s *UserService) SetAdmin(ctx context.Context, email string, admin bool) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.users.SetAdmin(ctx, email, admin); err != nil {
		return fmt.Errorf("set admin %q: %w", email, err)
	}
	return nil
}
