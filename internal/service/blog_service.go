package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-gin-blog-api/internal/core/auth"
	"go-gin-blog-api/internal/domain"
	"go-gin-blog-api/pkg/utils"
)

type BlogService struct {
	blogs domain.BlogRepository
	log   *zap.Logger
}

func NewBlogService(blogs domain.BlogRepository, log *zap.Logger) *BlogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &BlogService{blogs: blogs, log: log.Named("blog")}
}

func (s *BlogService) List(ctx context.Context, p domain.Page) ([]domain.Blog, domain.PageInfo, error) {
	blogs, total, err := s.blogs.List(ctx, p.Offset(), p.Size)
	if err != nil {
		return nil, domain.PageInfo{}, fmt.Errorf("list blogs: %w", err)
	}
	return blogs, domain.NewPageInfo(p, total), nil
}

// Create stores a post owned by the caller.
func (s *BlogService) Create(ctx context.Context, c *auth.Claims, in BlogInput) (*domain.Blog, error) {
	b := &domain.Blog{
		ID:       utils.NewID(),
		Title:    in.Title,
		Content:  in.Content,
		Status:   domain.StatusPublished,
		AuthorID: c.UID,
	}
	if in.Status != nil {
		b.Status = domain.BlogStatus(*in.Status)
	}
	if err := s.blogs.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	s.log.Debug("blog created", zap.String("blog_id", b.ID), zap.String("author_id", b.AuthorID))
	return b, nil
}

// Update rewrites title, content and status of a post the caller owns.
// A missing post is ErrNotFound even for non-owners.
func (s *BlogService) Update(ctx context.Context, c *auth.Claims, id string, in BlogInput) (*domain.Blog, error) {
	b, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find blog: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if !auth.IsOwner(c, b.AuthorID) {
		return nil, domain.ErrForbidden
	}

	b.Title, b.Content = in.Title, in.Content
	if in.Status != nil {
		b.Status = domain.BlogStatus(*in.Status)
	}
	if err := s.blogs.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("update blog: %w", err)
	}
	return b, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	ok, err := s.blogs.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	s.log.Info("blog deleted", zap.String("blog_id", id))
	return nil
}
