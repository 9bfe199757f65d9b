package chat

import (
	"sync"

	"github.com/google/uuid"
)

// Store хранит активные сессии в памяти. Блокировка защищает только карту:
// внутри одной сессии конкурентных изменений нет.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore создает пустое хранилище сессий.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Create создает новую сессию с системной репликой и регистрирует ее.
func (s *Store) Create() *Session {
	session := newSession()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return session
}

// Get возвращает сессию по идентификатору.
func (s *Store) Get(id uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	return session, ok
}

// Delete удаляет сессию; false, если ее не было.
func (s *Store) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len возвращает количество активных сессий.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}
