package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-gin-blog-api/internal/domain"
)

var (
	_ domain.UserRepository = (*UserRepo)(nil)
	_ domain.BlogRepository = (*BlogRepo)(nil)
	_ domain.UserRepository = (*MemoryUserRepo)(nil)
	_ domain.BlogRepository = (*MemoryBlogRepo)(nil)
)

// Migrate creates or updates the users and blogs tables and their unique indexes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Blog{})
}

// conflict maps a translated duplicate-key error onto the domain conflict for field.
func conflict(err error, field, value string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.ConflictError{Field: field, Value: value}
	}
	return err
}
