package events

import (
	"time"

	"github.com/spec-kit/book-catalog/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserCreated EventType = "user_created"
	EventUserDeleted EventType = "user_deleted"
	EventBookCreated EventType = "book_created"
	EventBookUpdated EventType = "book_updated"
	EventBookDeleted EventType = "book_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	UserID string      `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// BookCreatedPayload payload.
type BookCreatedPayload struct {
	BookID int64  `json:"book_id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn,omitempty"`
}

// BookUpdatedPayload payload.
type BookUpdatedPayload struct {
	BookID int64  `json:"book_id"`
	Title  string `json:"title"`
}

// BookDeletedPayload payload.
type BookDeletedPayload struct {
	BookID int64 `json:"book_id"`
}
