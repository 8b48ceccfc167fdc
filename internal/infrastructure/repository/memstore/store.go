// Package memstore keeps sessions in process memory. It backs local
// development without postgres and the adapter tests.
package memstore

import (
	"context"
	"errors"
	"sync"

	"github.com/kirillkom/idea-coach/internal/core/domain"
)

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
}

func New() *Store {
	return &Store{sessions: make(map[string]*domain.Session)}
}

func (s *Store) Create(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return domain.WrapError(domain.ErrInvalidInput, "create session", errors.New("session already exists"))
	}
	s.sessions[session.ID] = clone(session)
	return nil
}

func (s *Store) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.WrapError(domain.ErrSessionNotFound, "get session", errors.New(sessionID))
	}
	return clone(session), nil
}

func (s *Store) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[session.ID]; !ok {
		return domain.WrapError(domain.ErrSessionNotFound, "save session", errors.New(session.ID))
	}
	s.sessions[session.ID] = clone(session)
	return nil
}

// clone isolates stored state from caller mutation between turns.
func clone(session *domain.Session) *domain.Session {
	out := *session
	out.Transcript = make([]domain.Message, len(session.Transcript))
	copy(out.Transcript, session.Transcript)
	return &out
}
