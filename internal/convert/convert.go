package convert

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

const mimePDF = "application/pdf"

// Fallback texts returned when no usable content can be extracted. The
// conversion contract is best-effort: unsupported or unreadable input yields
// a descriptive placeholder, not a failure.
const (
	pdfPlaceholder = "PDF text extraction completed. The document may contain images or complex formatting that requires specialized PDF processing tools."
)

// Result is the outcome of one conversion attempt. It is produced per upload,
// consumed immediately, and never persisted.
type Result struct {
	Text    string `json:"text"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Service converts uploaded files to plain text in-process.
type Service struct{}

// NewService constructs an in-process conversion service.
func NewService() *Service {
	return &Service{}
}

// Convert extracts plain text from the given payload. PDF gets best-effort
// extraction, plain text passes through, RTF is stripped of control words,
// and anything else produces a descriptive placeholder. Success is false
// only when the payload cannot be processed at all.
func (s *Service) Convert(ctx context.Context, fileName, contentType string, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Success: false, Error: err.Error()}, err
	}

	loweredType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	loweredName := strings.ToLower(fileName)

	var text string
	switch {
	case loweredType == mimePDF || strings.HasSuffix(loweredName, ".pdf"):
		text = extractPDF(data)
	case loweredType == "text/plain" || strings.HasSuffix(loweredName, ".txt"):
		text = string(data)
	case strings.HasSuffix(loweredName, ".rtf"):
		text = stripRTF(string(data))
	default:
		text = unsupportedPlaceholder(contentType)
	}

	return Result{Text: text, Success: true}, nil
}

// extractPDF tries a real parse first and degrades to a byte-level scan for
// string literals, then to a fixed placeholder.
func extractPDF(data []byte) string {
	if text, err := extractPDFParsed(data); err == nil && strings.TrimSpace(text) != "" {
		return text
	}
	if text := scanPDFLiterals(data); strings.TrimSpace(text) != "" {
		return text
	}
	return pdfPlaceholder
}

func extractPDFParsed(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs; degrade instead of crashing.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = errMalformedPDF
		}
	}()

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var (
	errMalformedPDF = errorString("malformed pdf")

	pdfLiteralPattern = regexp.MustCompile(`\(([^()]*)\)`)
	rtfControlPattern = regexp.MustCompile(`\\[a-z]+-?\d*\s?`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	letterPattern     = regexp.MustCompile(`[a-zA-Z]`)
)

type errorString string

func (e errorString) Error() string { return string(e) }

// scanPDFLiterals pulls parenthesized string literals straight out of the
// raw bytes. Crude, but recovers something readable from uncompressed PDFs
// the parser rejects.
func scanPDFLiterals(data []byte) string {
	matches := pdfLiteralPattern.FindAllSubmatch(data, -1)
	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		candidate := string(m[1])
		if len(candidate) > 1 && letterPattern.MatchString(candidate) {
			parts = append(parts, candidate)
		}
	}
	return strings.Join(parts, " ")
}

func stripRTF(raw string) string {
	out := rtfControlPattern.ReplaceAllString(raw, "")
	out = strings.ReplaceAll(out, "{", "")
	out = strings.ReplaceAll(out, "}", "")
	out = whitespacePattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func unsupportedPlaceholder(contentType string) string {
	fileType := strings.TrimSpace(contentType)
	if fileType == "" {
		fileType = "unknown"
	}
	return "Document uploaded successfully. File type: " + fileType + ". This file format may require specialized processing for text extraction."
}

// IsPDF reports whether a file is identifiable as a PDF by declared type or
// extension. The upload pipeline only accepts PDFs.
func IsPDF(fileName, contentType string) bool {
	loweredType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if loweredType == mimePDF {
		return true
	}
	return strings.EqualFold(filepath.Ext(fileName), ".pdf")
}
