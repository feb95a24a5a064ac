package models

import (
	"time"

	"github.com/google/uuid"
)

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single role-tagged conversation turn as submitted to the
// model. Ordering is significant.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Message is a persisted conversation turn, ordered by CreatedAt ascending.
type Message struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// TaskResponse is the reply from the non-chat task endpoints. Payload and
// ArtifactURL are present only when the model emitted a well-formed
// delimited block and (for LaTeX) the render succeeded.
type TaskResponse struct {
	Response    string `json:"response"`
	Payload     string `json:"payload,omitempty"`
	PayloadKind string `json:"payload_kind,omitempty"`
	ArtifactURL string `json:"artifact_url,omitempty"`
}

type SummarizeJDRequest struct {
	JobDescription string `json:"job_description"`
}
