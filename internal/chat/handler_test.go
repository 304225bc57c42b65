package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeCivic struct {
	raw json.RawMessage
	err error
}

func (f *fakeCivic) CivicAsk(ctx context.Context, prompt string) (json.RawMessage, error) {
	return f.raw, f.err
}

func newTestRouter(svc *Service, civic CivicAsker, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
		}
		c.Next()
	})
	api := r.Group("/api/v1")
	NewHandler(svc, civic).RegisterRoutes(api)
	return r
}

func TestChatHandlerReturnsAnswer(t *testing.T) {
	svc := NewService(&fakeAsker{output: "Notice period changed."}, &fakeGate{ready: true})
	r := newTestRouter(svc, &fakeCivic{}, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"user_prompt":"what changed?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var msg Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != TypeAnswer || msg.Content != "Notice period changed." {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestChatHandlerWorkflowFailureIsStillOK(t *testing.T) {
	svc := NewService(&fakeAsker{err: errors.New("workflow endpoint status 500")}, &fakeGate{ready: true})
	r := newTestRouter(svc, &fakeCivic{}, "user-1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(`{"user_prompt":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("workflow failures must not fail the request, status = %d", w.Code)
	}
	var msg Message
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != TypeError {
		t.Fatalf("expected one error-typed message, got %+v", msg)
	}
}

func TestCivicHandlerNormalizesResponse(t *testing.T) {
	civic := &fakeCivic{raw: json.RawMessage(`{
		"success": true,
		"data": {"answer": {"english": "It amends the levy.", "swahili": "Inabadilisha ushuru."}}
	}`)}
	svc := NewService(&fakeAsker{}, &fakeGate{ready: true})
	r := newTestRouter(svc, civic, "user-1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/civic-education?user_prompt=levy", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var answer CivicAnswer
	if err := json.Unmarshal(w.Body.Bytes(), &answer); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if answer.EnglishText != "It amends the levy." || answer.SwahiliText != "Inabadilisha ushuru." {
		t.Fatalf("unexpected answer: %+v", answer)
	}
}

func TestCivicHandlerMissingPrompt(t *testing.T) {
	svc := NewService(&fakeAsker{}, &fakeGate{ready: true})
	r := newTestRouter(svc, &fakeCivic{}, "user-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/civic-education", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestCivicHandlerUnrecognizedShape(t *testing.T) {
	civic := &fakeCivic{raw: json.RawMessage(`{"totally": "different"}`)}
	svc := NewService(&fakeAsker{}, &fakeGate{ready: true})
	r := newTestRouter(svc, civic, "user-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/civic-education?user_prompt=levy", nil))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "workflow_decode_failed") {
		t.Fatalf("body = %s", w.Body.String())
	}
}
