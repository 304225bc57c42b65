package local

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"lawdocs-backend/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem. Public URLs are
// served by the API's /files route.
type Store struct {
	baseDir   string
	publicURL string
}

// New creates a new local object store rooted at baseDir.
func New(baseDir, publicBaseURL string) object.ObjectStore {
	return &Store{
		baseDir:   baseDir,
		publicURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// SaveWithKey writes the reader to disk at the given storage key. The
// declared content type is not persisted: the filesystem has nowhere to keep
// it, and the /files route derives Content-Type from the key's extension on
// the way out.
func (s *Store) SaveWithKey(ctx context.Context, storageKey string, _ string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return 0, err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}
	return written, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, filepath.FromSlash(clean)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, object.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// PublicURL resolves a locally stored key to its /files route.
func (s *Store) PublicURL(storageKey string) string {
	segments := strings.Split(strings.TrimLeft(storageKey, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.publicURL + "/files/" + strings.Join(segments, "/")
}

func cleanKey(storageKey string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(storageKey))
	if clean == "." || strings.HasPrefix(clean, "..") || strings.HasPrefix(clean, "/") {
		return "", fmt.Errorf("invalid storage key")
	}
	return clean, nil
}

var _ object.ObjectStore = (*Store)(nil)
