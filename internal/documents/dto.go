package documents

import "time"

// DocumentResponse is the wire representation of a document.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	OriginalURL string    `json:"originalUrl"`
	TxtURL      string    `json:"txtUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UploadResponse returns the created document together with the final
// progress percentage so clients can close out their progress UI.
type UploadResponse struct {
	Document DocumentResponse `json:"document"`
	Progress int              `json:"progress"`
}

// ListResponse wraps a page of documents.
type ListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		Name:        doc.Name,
		OriginalURL: doc.OriginalURL,
		TxtURL:      doc.TxtURL,
		CreatedAt:   doc.CreatedAt,
	}
}
