package documents

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lawdocs-backend/internal/convert"
	"lawdocs-backend/internal/shared/metrics"
	"lawdocs-backend/internal/shared/storage/object"
	"lawdocs-backend/internal/shared/util"
)

// Converter turns an uploaded file into plain text. Implemented in-process
// by convert.Service and remotely by convert.Client.
type Converter interface {
	Convert(ctx context.Context, fileName, contentType string, data []byte) (convert.Result, error)
}

// ProgressFunc receives a step description and percent-complete as the
// upload pipeline advances. 100 marks full completion.
type ProgressFunc func(step string, percent int)

// Service runs the document ingestion pipeline: convert, upload original,
// upload text, resolve URLs, insert metadata. Steps run strictly in order;
// the first failure aborts the rest. Blobs written by earlier steps are not
// rolled back — keys are persisted alongside URLs so orphans stay findable.
type Service struct {
	Store     object.ObjectStore
	Repo      DocumentsRepo
	Converter Converter

	// now is swappable for deterministic storage keys in tests.
	now func() time.Time
}

// NewService constructs an upload service.
func NewService(store object.ObjectStore, repo DocumentsRepo, converter Converter) *Service {
	return &Service{
		Store:     store,
		Repo:      repo,
		Converter: converter,
		now:       time.Now,
	}
}

// Upload ingests one document for a user and returns the created record.
func (s *Service) Upload(ctx context.Context, userID, name, fileName, contentType string, data []byte, progress ProgressFunc) (Document, error) {
	if progress == nil {
		progress = func(string, int) {}
	}

	if strings.TrimSpace(userID) == "" {
		return Document{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Document{}, fmt.Errorf("%w: document name is required", ErrInvalidInput)
	}
	if len(data) == 0 {
		return Document{}, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}
	if !convert.IsPDF(fileName, contentType) {
		return Document{}, fmt.Errorf("%w: only PDF documents are supported", ErrUnsupportedType)
	}

	metrics.IncUploadStarted()
	started := s.now()

	doc, err := s.run(ctx, userID, name, fileName, contentType, data, progress)
	if err != nil {
		metrics.IncUploadFailed()
		return Document{}, err
	}

	metrics.IncUploadCompleted()
	metrics.ObserveUploadDurationMs(float64(s.now().Sub(started).Milliseconds()))
	return doc, nil
}

func (s *Service) run(ctx context.Context, userID, name, fileName, contentType string, data []byte, progress ProgressFunc) (Document, error) {
	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	progress("Converting document to text", 20)
	result, err := s.Converter.Convert(ctx, fileName, contentType, data)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s", ErrConversionFailed, err.Error())
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "failed to convert document"
		}
		return Document{}, fmt.Errorf("%w: %s", ErrConversionFailed, msg)
	}

	stamp := s.now().UnixMilli()
	originalKey := fmt.Sprintf("originals/%d-%s", stamp, sanitizedName)
	base := strings.TrimSuffix(sanitizedName, filepath.Ext(sanitizedName))
	txtKey := fmt.Sprintf("converted/%d-%s.txt", stamp, base)

	progress("Uploading original document", 40)
	if _, err := s.Store.SaveWithKey(ctx, originalKey, contentType, bytes.NewReader(data)); err != nil {
		return Document{}, fmt.Errorf("upload original: %w", err)
	}

	progress("Uploading converted text", 60)
	if _, err := s.Store.SaveWithKey(ctx, txtKey, "text/plain; charset=utf-8", strings.NewReader(result.Text)); err != nil {
		return Document{}, fmt.Errorf("upload converted text: %w", err)
	}

	progress("Resolving public URLs", 80)
	originalURL := s.Store.PublicURL(originalKey)
	txtURL := s.Store.PublicURL(txtKey)

	progress("Saving document record", 90)
	doc := Document{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		OriginalURL: originalURL,
		TxtURL:      txtURL,
		OriginalKey: originalKey,
		TxtKey:      txtKey,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("save document: %w", err)
	}

	progress("Upload complete", 100)
	return doc, nil
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Get fetches one document owned by the user.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(documentID) == "" {
		return Document{}, fmt.Errorf("%w: user id and document id are required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// Delete removes the metadata row. Stored blobs are intentionally left in
// place; the row keeps both storage keys so a reconciliation sweep can find
// them later.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(documentID) == "" {
		return fmt.Errorf("%w: user id and document id are required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, userID, documentID)
}
