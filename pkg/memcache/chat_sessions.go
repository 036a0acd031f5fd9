package mem

import (
	"sync"
	"time"

	"yatrojana/internal/models/response_models"
)

type ChatSessionStore interface {
	Put(session response_models.ChatSession)

	// Get returns a copy of the session if it exists and has not expired.
	Get(id string) (response_models.ChatSession, bool)

	// Append adds messages to the session and refreshes its expiry.
	// Returns false if the session is missing or expired.
	Append(id string, messages ...response_models.ChatMessage) bool

	Delete(id string) bool

	// Acquire marks the session busy. It fails if the session is missing
	// or already busy. Release clears the mark.
	Acquire(id string) bool
	Release(id string)

	// Sweep drops expired sessions and reports how many were removed.
	Sweep() int
}

type sessionEntry struct {
	session   response_models.ChatSession
	busy      bool
	expiresAt time.Time
}

type ChatSessions struct {
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]*sessionEntry
}

func NewChatSessions(ttl time.Duration) *ChatSessions {
	return &ChatSessions{
		ttl:  ttl,
		now:  time.Now,
		data: make(map[string]*sessionEntry),
	}
}

func copySession(s response_models.ChatSession) response_models.ChatSession {
	s.Messages = append([]response_models.ChatMessage(nil), s.Messages...)
	return s
}

func (s *ChatSessions) Put(session response_models.ChatSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[session.ID] = &sessionEntry{
		session:   copySession(session),
		expiresAt: s.now().Add(s.ttl),
	}
}

// live returns the entry for id, deleting it when expired. Caller holds the write lock.
func (s *ChatSessions) live(id string) *sessionEntry {
	e, ok := s.data[id]
	if !ok {
		return nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.data, id)
		return nil
	}
	return e
}

func (s *ChatSessions) Get(id string) (response_models.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[id]
	if !ok || s.now().After(e.expiresAt) {
		return response_models.ChatSession{}, false
	}
	return copySession(e.session), true
}

func (s *ChatSessions) Append(id string, messages ...response_models.ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(id)
	if e == nil {
		return false
	}
	e.session.Messages = append(e.session.Messages, messages...)
	e.expiresAt = s.now().Add(s.ttl)
	return true
}

func (s *ChatSessions) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live(id) == nil {
		return false
	}
	delete(s.data, id)
	return true
}

func (s *ChatSessions) Acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.live(id)
	if e == nil || e.busy {
		return false
	}
	e.busy = true
	return true
}

func (s *ChatSessions) Release(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.data[id]; ok {
		e.busy = false
	}
}

func (s *ChatSessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.data {
		if now.After(e.expiresAt) && !e.busy {
			delete(s.data, id)
			removed++
		}
	}
	return removed
}
