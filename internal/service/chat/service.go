package chat

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/zhouzirui/aoc-chat/backend/internal/errors"
	"github.com/zhouzirui/aoc-chat/backend/internal/model/chat"
)

// Service owns the in-memory session store. State lives for the lifetime of
// the process only.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*chat.Session
	now      func() time.Time
}

// NewService returns an empty store stamped with the wall clock.
func NewService() *Service {
	return NewServiceWithClock(func() time.Time { return time.Now().UTC() })
}

// NewServiceWithClock returns an empty store that stamps records with now.
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{
		sessions: make(map[string]*chat.Session),
		now:      now,
	}
}

// RecordTurn appends a completed user/assistant exchange to sessionID,
// creating the session on first use. Title and creation time are fixed by the
// first turn.
func (s *Service) RecordTurn(_ context.Context, sessionID, userMessage, reply string) (chat.Session, error) {
	if sessionID == "" {
		sessionID = chat.DefaultSessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	session, ok := s.sessions[sessionID]
	if !ok {
		session = &chat.Session{
			ID:       sessionID,
			Title:    chat.TitleFrom(userMessage),
			Created:  now,
			Messages: make([]chat.Message, 0, 16),
		}
		s.sessions[sessionID] = session
	}

	session.Messages = append(session.Messages,
		chat.Message{
			ID:        uuid.NewString(),
			Role:      chat.RoleUser,
			Content:   userMessage,
			Timestamp: now,
		},
		chat.Message{
			ID:        uuid.NewString(),
			Role:      chat.RoleAssistant,
			Content:   reply,
			Timestamp: now,
		},
	)

	return session.Clone(), nil
}

// ListSessions returns session summaries, most recently created first.
func (s *Service) ListSessions(_ context.Context) []chat.Summary {
	s.mu.RLock()
	summaries := make([]chat.Summary, 0, len(s.sessions))
	for _, session := range s.sessions {
		summaries = append(summaries, session.Summary())
	}
	s.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		if !summaries[i].Created.Equal(summaries[j].Created) {
			return summaries[i].Created.After(summaries[j].Created)
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries
}

// GetSession retrieves a copy of the session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, apperrors.NewNotFoundError("session", sessionID)
	}
	return session.Clone(), nil
}

// DeleteSession removes the session and its transcript.
func (s *Service) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return apperrors.NewNotFoundError("session", sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}

// Len reports how many sessions are held.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
