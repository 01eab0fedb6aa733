package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	messages   []Message
	content    string
	hasContent bool
	deadline   time.Time
}

// Memory is the default single-process store: a mutex-guarded map with a
// per-session TTL. Touching a session renews its deadline; every write
// also prunes whatever sessions have expired in the meantime.
type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memoryEntry
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:      ttl,
		sessions: make(map[string]*memoryEntry),
	}
}

// entry returns the live entry for id, creating one if needed. Caller
// must hold the mutex.
func (m *Memory) entry(id string) *memoryEntry {
	now := time.Now()
	e, ok := m.sessions[id]
	if !ok || now.After(e.deadline) {
		e = &memoryEntry{}
		m.sessions[id] = e
	}
	e.deadline = now.Add(m.ttl)
	return e
}

// prune drops every expired session, so abandoned IDs don't accumulate.
// Called on writes; caller must hold the mutex.
func (m *Memory) prune(now time.Time) {
	for id, e := range m.sessions {
		if now.After(e.deadline) {
			delete(m.sessions, id)
		}
	}
}

func (m *Memory) Append(ctx context.Context, id string, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune(time.Now())
	e := m.entry(id)
	e.messages = append(e.messages, msg)
	return nil
}

func (m *Memory) History(ctx context.Context, id string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entry(id)
	out := make([]Message, len(e.messages))
	copy(out, e.messages)
	return out, nil
}

func (m *Memory) SetContent(ctx context.Context, id, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prune(time.Now())
	e := m.entry(id)
	e.content = content
	e.hasContent = true
	return nil
}

func (m *Memory) Content(ctx context.Context, id string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entry(id)
	if !e.hasContent {
		return "", ErrNoContent
	}
	return e.content, nil
}

func (m *Memory) Clear(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
