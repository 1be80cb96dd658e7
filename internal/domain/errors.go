package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("access denied")
)

// ConflictError reports a value that already exists on another record.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string { return fmt.Sprintf("%q already exists", e.Value) }
