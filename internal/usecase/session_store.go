package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/covid-dashboard/internal/reactive"
)

// session - состояние одной вкладки браузера. mu сериализует проходы пересчета.
type session struct {
	mu        sync.Mutex
	id        uuid.UUID
	state     reactive.State
	createdAt time.Time
	updatedAt time.Time
}

// sessionStore хранит сессии в памяти процесса, перезапуск их сбрасывает
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[uuid.UUID]*session)}
}

func (s *sessionStore) add(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
}

func (s *sessionStore) get(id uuid.UUID) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *sessionStore) delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// evictIdle удаляет сессии, не обновлявшиеся дольше ttl
func (s *sessionStore) evictIdle(now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.updatedAt) > ttl
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

func (s *sessionStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
