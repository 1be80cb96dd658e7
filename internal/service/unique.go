package service

import (
	"context"
	"fmt"

	"go-gin-blog-api/internal/domain"
)

// Lookup returns the id of the record holding value.
type Lookup func(ctx context.Context, value string) (id string, found bool, err error)

// CheckUnique fails with a ConflictError when value is held by a record other
// than excludeID. An empty excludeID exempts nothing.
func CheckUnique(ctx context.Context, lookup Lookup, field, value, excludeID string) error {
	id, found, err := lookup(ctx, value)
	if err != nil {
		return fmt.Errorf("unique %s: %w", field, err)
	}
	if !found || (excludeID != "" && id == excludeID) {
		return nil
	}
	return &domain.ConflictError{Field: field, Value: value}
}

func EmailLookup(users domain.UserRepository) Lookup {
	return func(ctx context.Context, email string) (string, bool, error) {
		u, err := users.FindByEmail(ctx, email)
		if err != nil || u == nil {
			return "", false, err
		}
		return u.ID, true, nil
	}
}

func TitleLookup(blogs domain.BlogRepository) Lookup {
	return func(ctx context.Context, title string) (string, bool, error) {
		b, err := blogs.FindByTitle(ctx, title)
		if err != nil || b == nil {
			return "", false, err
		}
		return b.ID, true, nil
	}
}
