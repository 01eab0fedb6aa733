package session

import (
	"context"
	"errors"
	"time"
)

// Message is one transcript entry in a chat session.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ErrNoContent means the session has not analyzed a URL yet, so there is
// nothing to answer questions against.
var ErrNoContent = errors.New("no content cached for session")

// Store keeps per-session chat state: the transcript and the main text of
// the last analyzed page. State lives for one session only; expiry clears
// it. The store is externally owned state passed into handlers, keeping
// the analysis pipeline itself stateless.
type Store interface {
	Append(ctx context.Context, id string, msg Message) error
	History(ctx context.Context, id string) ([]Message, error)
	SetContent(ctx context.Context, id, content string) error
	Content(ctx context.Context, id string) (string, error)
	Clear(ctx context.Context, id string) error
}
