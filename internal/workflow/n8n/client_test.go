package n8n

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestVectorizeSendsBothURLs(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"error_count": 0})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", "", 0)
	result, err := client.Vectorize(context.Background(), "https://example.com/a.pdf", "https://example.com/b.pdf")
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if result.ErrorCount != 0 {
		t.Fatalf("expected error_count 0, got %d", result.ErrorCount)
	}
	if got["file1_url"] != "https://example.com/a.pdf" || got["file2_url"] != "https://example.com/b.pdf" {
		t.Fatalf("unexpected request payload: %v", got)
	}
}

func TestVectorizeSurfacesErrorCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error_count": 2,
			"errors":      []string{"bad url", "fetch failed"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", "", 0)
	result, err := client.Vectorize(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
	if result.ErrorCount != 2 || len(result.Errors) != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAskReturnsOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req["user_prompt"] != "what changed?" {
			t.Errorf("unexpected prompt %q", req["user_prompt"])
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"output": "Clause 4 differs."})
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, "", "", 0)
	out, err := client.Ask(context.Background(), "what changed?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if out != "Clause 4 differs." {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestAskNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, "", "", 0)
	if _, err := client.Ask(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestCivicAskPassesPromptAsQueryParam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.URL.Query().Get("user_prompt"); got != "what is the levy?" {
			t.Errorf("unexpected prompt %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient("", "", srv.URL, "", 0)
	raw, err := client.CivicAsk(context.Background(), "what is the levy?")
	if err != nil {
		t.Fatalf("CivicAsk: %v", err)
	}
	if string(raw) != `{"success":true}` {
		t.Fatalf("unexpected raw payload %s", raw)
	}
}

func TestClientSendsAuthToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"error_count": 0})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "", "secret-token", 0)
	if _, err := client.Vectorize(context.Background(), "a", "b"); err != nil {
		t.Fatalf("Vectorize: %v", err)
	}
}

func TestNewClientAppliesTimeout(t *testing.T) {
	client := NewClient("", "", "", "", 30*time.Second)
	if got := client.httpClient.Timeout; got != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", got)
	}

	client = NewClient("", "", "", "", 0)
	if got := client.httpClient.Timeout; got != defaultTimeout {
		t.Fatalf("expected default timeout, got %v", got)
	}
}

func TestUnconfiguredURLFailsFast(t *testing.T) {
	client := NewClient("", "", "", "", 0)
	if _, err := client.Vectorize(context.Background(), "a", "b"); err == nil {
		t.Fatalf("expected error for unconfigured vector url")
	}
	if _, err := client.Ask(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error for unconfigured chat url")
	}
	if _, err := client.CivicAsk(context.Background(), "hi"); err == nil {
		t.Fatalf("expected error for unconfigured civic url")
	}
}
