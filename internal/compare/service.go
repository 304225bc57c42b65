package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lawdocs-backend/internal/documents"
	"lawdocs-backend/internal/shared/metrics"
	"lawdocs-backend/internal/shared/telemetry"
	"lawdocs-backend/internal/workflow/n8n"
)

var (
	ErrSameDocument = errors.New("documents must be different")
	ErrInvalidInput = errors.New("invalid input")
)

// Vectorizer submits two document URLs to the comparison workflow.
type Vectorizer interface {
	Vectorize(ctx context.Context, file1URL, file2URL string) (n8n.VectorResult, error)
}

// DocumentGetter resolves a user's document by id.
type DocumentGetter interface {
	Get(ctx context.Context, userID, documentID string) (documents.Document, error)
}

// Service orchestrates a document comparison: resolve both documents, hand
// their text URLs to the vectorization workflow, and open the chat gate on
// success. The workflow reports partial failures through error_count; any
// non-zero count fails the comparison and leaves the gate closed.
type Service struct {
	Docs       DocumentGetter
	Vectorizer Vectorizer
	Gate       *Gate
}

// NewService constructs a comparison service.
func NewService(docs DocumentGetter, vectorizer Vectorizer, gate *Gate) *Service {
	return &Service{Docs: docs, Vectorizer: vectorizer, Gate: gate}
}

// Compare runs the comparison for a user's two documents.
func (s *Service) Compare(ctx context.Context, userID, doc1ID, doc2ID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	doc1ID = strings.TrimSpace(doc1ID)
	doc2ID = strings.TrimSpace(doc2ID)
	if doc1ID == "" || doc2ID == "" {
		return fmt.Errorf("%w: two document ids are required", ErrInvalidInput)
	}
	if doc1ID == doc2ID {
		return ErrSameDocument
	}

	metrics.IncCompareRequested()
	s.Gate.Clear(userID)

	doc1, err := s.Docs.Get(ctx, userID, doc1ID)
	if err != nil {
		metrics.IncCompareFailed()
		return fmt.Errorf("resolve first document: %w", err)
	}
	doc2, err := s.Docs.Get(ctx, userID, doc2ID)
	if err != nil {
		metrics.IncCompareFailed()
		return fmt.Errorf("resolve second document: %w", err)
	}

	// The vectorization workflow ingests the original PDFs, not the
	// extracted-text siblings.
	result, err := s.Vectorizer.Vectorize(ctx, doc1.OriginalURL, doc2.OriginalURL)
	if err != nil {
		metrics.IncCompareFailed()
		return fmt.Errorf("vectorization workflow: %w", err)
	}
	if result.ErrorCount > 0 {
		metrics.IncCompareFailed()
		detail := strings.Join(result.Errors, "; ")
		if detail == "" {
			detail = fmt.Sprintf("%d error(s) reported", result.ErrorCount)
		}
		return fmt.Errorf("vectorization failed: %s", detail)
	}

	s.Gate.SetReady(userID)
	telemetry.Info("compare.complete", map[string]any{
		"user_id":      userID,
		"document1_id": doc1.ID,
		"document2_id": doc2.ID,
	})
	return nil
}

// Ready reports whether the user may chat about a compared pair.
func (s *Service) Ready(userID string) bool {
	return s.Gate.Ready(userID)
}
