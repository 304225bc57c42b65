package documents

import "context"

// DocumentsRepo defines persistence operations for documents. Every
// operation is scoped to the owning user.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
	// Delete removes the metadata row only. Stored blobs are retained; see
	// the delete handler for the lifecycle notes. Deleting a missing or
	// foreign row is a no-op.
	Delete(ctx context.Context, userID, documentID string) error
}
