package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 120 * time.Second

// Client calls the hosted n8n workflows: document vectorization, document
// Q&A, and the civic-education explainer. Workflow internals are opaque;
// this client only speaks their request/response shapes.
type Client struct {
	vectorURL  string
	chatURL    string
	civicURL   string
	authToken  string
	httpClient *http.Client
}

// NewClient constructs a workflow client. Individual URLs may be empty, in
// which case the corresponding call fails fast. A non-positive timeout falls
// back to the default.
func NewClient(vectorURL, chatURL, civicURL, authToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		vectorURL: strings.TrimSpace(vectorURL),
		chatURL:   strings.TrimSpace(chatURL),
		civicURL:  strings.TrimSpace(civicURL),
		authToken: strings.TrimSpace(authToken),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// VectorResult is the vectorization workflow's response.
type VectorResult struct {
	ErrorCount int      `json:"error_count"`
	Errors     []string `json:"errors,omitempty"`
}

type vectorRequest struct {
	File1URL string `json:"file1_url"`
	File2URL string `json:"file2_url"`
}

// Vectorize submits two document URLs for ingestion by the comparison
// workflow and reports how many errors the workflow hit.
func (c *Client) Vectorize(ctx context.Context, file1URL, file2URL string) (VectorResult, error) {
	if c.vectorURL == "" {
		return VectorResult{}, fmt.Errorf("VECTOR_WORKFLOW_URL is not configured")
	}

	payload, err := json.Marshal(vectorRequest{File1URL: file1URL, File2URL: file2URL})
	if err != nil {
		return VectorResult{}, err
	}

	body, err := c.post(ctx, c.vectorURL, payload)
	if err != nil {
		return VectorResult{}, err
	}

	var result VectorResult
	if err := json.Unmarshal(body, &result); err != nil {
		return VectorResult{}, fmt.Errorf("vector workflow response parse: %w", err)
	}
	return result, nil
}

type askRequest struct {
	UserPrompt string `json:"user_prompt"`
}

type askResponse struct {
	Output string `json:"output"`
}

// Ask forwards a free-text prompt to the document Q&A workflow and returns
// its output field. An empty output is returned as-is; the caller decides
// the fallback.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	if c.chatURL == "" {
		return "", fmt.Errorf("CHAT_WORKFLOW_URL is not configured")
	}

	payload, err := json.Marshal(askRequest{UserPrompt: prompt})
	if err != nil {
		return "", err
	}

	body, err := c.post(ctx, c.chatURL, payload)
	if err != nil {
		return "", err
	}

	var parsed askResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("chat workflow response parse: %w", err)
	}
	return parsed.Output, nil
}

// CivicAsk queries the civic-education workflow. The prompt travels as a
// query parameter; the response shape varies by workflow version, so the raw
// payload is returned for the caller's normalizer.
func (c *Client) CivicAsk(ctx context.Context, prompt string) (json.RawMessage, error) {
	if c.civicURL == "" {
		return nil, fmt.Errorf("CIVIC_WORKFLOW_URL is not configured")
	}

	endpoint, err := url.Parse(c.civicURL)
	if err != nil {
		return nil, fmt.Errorf("civic workflow url: %w", err)
	}
	query := endpoint.Query()
	query.Set("user_prompt", prompt)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return nil, fmt.Errorf("workflow request timeout: %w", err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("workflow endpoint status %d", resp.StatusCode)
	}
	return body, nil
}
