package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Client calls a remote conversion endpoint instead of converting in-process.
// It implements the same Convert signature as Service, so the upload pipeline
// can be pointed at either.
type Client struct {
	endpoint   string
	authToken  string
	httpClient *http.Client
}

// NewClient constructs a conversion client for the given endpoint.
func NewClient(endpoint, authToken string) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("convert endpoint is required")
	}
	return &Client{
		endpoint:  endpoint,
		authToken: strings.TrimSpace(authToken),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Convert posts the file as multipart form data and decodes the
// {text, success, error} response.
func (c *Client) Convert(ctx context.Context, fileName, contentType string, data []byte) (Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return Result{}, fmt.Errorf("convert request build: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return Result{}, fmt.Errorf("convert request build: %w", err)
	}
	if err := writer.Close(); err != nil {
		return Result{}, fmt.Errorf("convert request build: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("convert request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("convert response read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("convert endpoint status %d", resp.StatusCode)
	}

	var result Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return Result{}, fmt.Errorf("convert response parse: %w", err)
	}
	return result, nil
}
