package server

import (
	"sync"
	"time"

	"github.com/alkime/blogsmith/internal/metrics"
	"github.com/alkime/blogsmith/internal/session"
)

type storeEntry struct {
	sess     *session.Session
	lastSeen time.Time
}

// sessionStore owns the live HTTP sessions and reaps idle ones.
type sessionStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	create  func() *session.Session
	entries map[string]*storeEntry
}

func newSessionStore(ttl time.Duration, now func() time.Time, create func() *session.Session) *sessionStore {
	return &sessionStore{
		ttl:     ttl,
		now:     now,
		create:  create,
		entries: make(map[string]*storeEntry),
	}
}

func (s *sessionStore) New() *session.Session {
	sess := s.create()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sess.ID()] = &storeEntry{sess: sess, lastSeen: s.now()}
	metrics.ActiveSessions.Set(float64(len(s.entries)))

	return sess
}

// Get returns the session and marks it as seen.
func (s *sessionStore) Get(id string) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()

	return e.sess, true
}

func (s *sessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return false
	}

	e.sess.Close()
	delete(s.entries, id)
	metrics.ActiveSessions.Set(float64(len(s.entries)))

	return true
}

// Reap closes sessions not seen within the TTL and returns how many it
// removed.
func (s *sessionStore) Reap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	reaped := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			e.sess.Close()
			delete(s.entries, id)
			reaped++
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.entries)))

	return reaped
}

func (s *sessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

func (s *sessionStore) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		e.sess.Close()
		delete(s.entries, id)
	}
	metrics.ActiveSessions.Set(0)
}
