package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemory_AppendAndHistory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	m.Append(ctx, "s1", Message{Role: "user", Content: "https://example.com"})
	m.Append(ctx, "s1", Message{Role: "assistant", Content: "a summary"})
	m.Append(ctx, "s2", Message{Role: "user", Content: "other session"})

	history, err := m.History(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(history))
	}
	if history[0].Role != "user" || history[1].Content != "a summary" {
		t.Errorf("unexpected transcript: %+v", history)
	}
}

func TestMemory_ContentRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	if _, err := m.Content(ctx, "s1"); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent before analysis, got %v", err)
	}

	m.SetContent(ctx, "s1", "main text")
	content, err := m.Content(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "main text" {
		t.Errorf("content = %q", content)
	}

	// Empty content is still "analyzed": the page just had no text
	m.SetContent(ctx, "s1", "")
	if _, err := m.Content(ctx, "s1"); err != nil {
		t.Errorf("empty cached content should not be ErrNoContent: %v", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(20 * time.Millisecond)

	m.SetContent(ctx, "s1", "main text")
	time.Sleep(40 * time.Millisecond)

	if _, err := m.Content(ctx, "s1"); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected session to expire, got %v", err)
	}
}

func TestMemory_PrunesAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(20 * time.Millisecond)

	// Sessions that are never touched again
	for _, id := range []string{"old1", "old2", "old3"} {
		m.SetContent(ctx, id, "text")
	}
	time.Sleep(40 * time.Millisecond)

	// A write on an unrelated session evicts the expired ones
	m.Append(ctx, "fresh", Message{Role: "user", Content: "hi"})

	m.mu.Lock()
	n := len(m.sessions)
	m.mu.Unlock()
	if n != 1 {
		t.Errorf("expected only the fresh session to remain, got %d entries", n)
	}
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	m.Append(ctx, "s1", Message{Role: "user", Content: "hi"})
	m.SetContent(ctx, "s1", "main text")
	m.Clear(ctx, "s1")

	if _, err := m.Content(ctx, "s1"); !errors.Is(err, ErrNoContent) {
		t.Errorf("expected cleared session, got %v", err)
	}
	history, _ := m.History(ctx, "s1")
	if len(history) != 0 {
		t.Errorf("expected empty transcript after clear, got %d messages", len(history))
	}
}

func TestMemory_HistoryIsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	m.Append(ctx, "s1", Message{Role: "user", Content: "original"})
	history, _ := m.History(ctx, "s1")
	history[0].Content = "mutated"

	again, _ := m.History(ctx, "s1")
	if again[0].Content != "original" {
		t.Errorf("History must return a copy, stored transcript was mutated")
	}
}
