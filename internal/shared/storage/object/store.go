package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound indicates the key has no stored object.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for saving and retrieving binary objects.
// Keys are caller-chosen; collision resistance is the caller's concern.
type ObjectStore interface {
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// PublicURL resolves the public locator for a stored object. It does not
	// verify that the object exists.
	PublicURL(storageKey string) string
}
