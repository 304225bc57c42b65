package documents

import (
	"errors"
	"time"
)

// Document pairs an uploaded original file with its extracted-text sibling,
// owned by a single user.
type Document struct {
	ID          string
	UserID      string
	Name        string
	OriginalURL string
	TxtURL      string
	OriginalKey string
	TxtKey      string
	CreatedAt   time.Time
}

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnsupportedType  = errors.New("unsupported file type")
	ErrConversionFailed = errors.New("conversion failed")
)
