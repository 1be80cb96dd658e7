package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

type BlogStatus string

const (
	StatusDraft     BlogStatus = "draft"
	StatusPublished BlogStatus = "published"
	StatusArchived  BlogStatus = "archived"
)

func (s BlogStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Blog is a post. AuthorID is fixed at creation; Author is only populated on reads.
// Title uniqueness is indexed through TitleKey, which repositories keep in sync.
type Blog struct {
	ID        string     `gorm:"primaryKey;size:24"`
	Title     string     `gorm:"size:1000;not null"`
	TitleKey  string     `gorm:"uniqueIndex;size:64;not null"`
	Content   string     `gorm:"type:text;not null"`
	Status    BlogStatus `gorm:"size:16;not null;default:published"`
	AuthorID  string     `gorm:"size:24;not null;index"`
	Author    *User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Blog) TableName() string { return "blogs" }

// TitleKey is the hex sha256 of title. A 1000-character utf8mb4 column is over
// the InnoDB index key limit, the digest is not.
func TitleKey(title string) string {
	sum := sha256.Sum256([]byte(title))
	return hex.EncodeToString(sum[:])
}

// BlogRepository lookups return (nil, nil) when nothing matches. Reads load Author.
type BlogRepository interface {
	Create(ctx context.Context, b *Blog) error
	FindByID(ctx context.Context, id string) (*Blog, error)
	FindByTitle(ctx context.Context, title string) (*Blog, error)
	List(ctx context.Context, offset, limit int) ([]Blog, int64, error)
	// Update writes title, content and status only.
	Update(ctx context.Context, b *Blog) error
	Delete(ctx context.Context, id string) (bool, error)
}
