package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-gin-blog-api/internal/domain"
)

type BlogRepo struct{ db *gorm.DB }

func NewBlogRepo(db *gorm.DB) *BlogRepo { return &BlogRepo{db: db} }

func (r *BlogRepo) Create(ctx context.Context, b *domain.Blog) error {
	b.TitleKey = domain.TitleKey(b.Title)
	err := r.db.WithContext(ctx).Omit("Author").Create(b).Error
	if err != nil {
		return conflict(err, "title", b.Title)
	}
	var author domain.User
	if err := r.db.WithContext(ctx).First(&author, "id = ?", b.AuthorID).Error; err != nil {
		return err
	}
	b.Author = &author
	return nil
}

func (r *BlogRepo) FindByID(ctx context.Context, id string) (*domain.Blog, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *BlogRepo) FindByTitle(ctx context.Context, title string) (*domain.Blog, error) {
	return r.first(ctx, "title_key = ? AND title = ?", domain.TitleKey(title), title)
}

func (r *BlogRepo) first(ctx context.Context, query string, args ...any) (*domain.Blog, error) {
	var b domain.Blog
	err := r.db.WithContext(ctx).Preload("Author").First(&b, append([]any{query}, args...)...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlogRepo) List(ctx context.Context, offset, limit int) ([]domain.Blog, int64, error) {
	var blogs []domain.Blog
	tx := r.db.WithContext(ctx).Model(&domain.Blog{})
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := tx.Preload("Author").
		Offset(offset).Limit(limit).
		Order("created_at desc").Order("id").
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

func (r *BlogRepo) Update(ctx context.Context, b *domain.Blog) error {
	b.TitleKey = domain.TitleKey(b.Title)
	err := r.db.WithContext(ctx).Model(b).Omit("Author").
		Select("title", "title_key", "content", "status").
		Updates(b).Error
	return conflict(err, "title", b.Title)
}

func (r *BlogRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Blog{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
