package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"lawdocs-backend/internal/shared/metrics"
	"lawdocs-backend/internal/shared/telemetry"
)

// Message type values returned to the client. Errors travel as messages so
// the conversation UI can render them inline instead of breaking the stream.
const (
	TypeAnswer = "answer"
	TypeError  = "error"
)

const (
	emptyAnswerFallback = "I apologize, but I received an empty response. Please try rephrasing your question."
	notReadyMessage     = "Please compare two documents first, then ask your questions about them."
	workflowDownMessage = "I could not reach the assistant right now. Please try again in a moment."
)

// Message is a single chat turn returned to the client. Messages are never
// persisted; the transcript lives client-side.
type Message struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func newMessage(msgType, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Type:      msgType,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// Asker relays a prompt to the document Q&A workflow.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// ReadyChecker reports whether a user has a completed document comparison.
type ReadyChecker interface {
	Ready(userID string) bool
}

// Service relays chat prompts to the Q&A workflow. Failures never surface as
// HTTP errors; they become error-typed messages.
type Service struct {
	Asker Asker
	Gate  ReadyChecker
}

// NewService constructs a chat service.
func NewService(asker Asker, gate ReadyChecker) *Service {
	return &Service{Asker: asker, Gate: gate}
}

// Ask relays the user's prompt and returns exactly one message.
func (s *Service) Ask(ctx context.Context, userID, prompt string) Message {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return newMessage(TypeError, "Please enter a question.")
	}
	if !s.Gate.Ready(userID) {
		return newMessage(TypeError, notReadyMessage)
	}

	metrics.IncChatRelay()
	output, err := s.Asker.Ask(ctx, prompt)
	if err != nil {
		metrics.IncChatRelayError()
		telemetry.Error("chat.relay_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return newMessage(TypeError, workflowDownMessage)
	}

	if strings.TrimSpace(output) == "" {
		return newMessage(TypeAnswer, emptyAnswerFallback)
	}
	return newMessage(TypeAnswer, output)
}
