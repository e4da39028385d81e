package service

import (
	"sync"
	"time"

	"vocabquiz/internal/domain"
)

type storedSession struct {
	session *domain.Session
	touched time.Time
}

// keyLock serializes updates of one key; refs counts holders and waiters
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// SessionStore keeps one quiz session per rendering-layer client key.
// mu guards only the maps; updates of one key are serialized by its keyLock.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*storedSession
	locks    map[string]*keyLock
	now      func() time.Time
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*storedSession),
		locks:    make(map[string]*keyLock),
		now:      time.Now,
	}
}

// lockKey acquires the update lock of key and returns its release func
func (s *SessionStore) lockKey(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &keyLock{}
		s.locks[key] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, key)
		}
		s.mu.Unlock()
	}
}

// Get returns the session stored under key
func (s *SessionStore) Get(key string) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.sessions[key]
	if !ok {
		return nil, false
	}
	return stored.session, true
}

// Put replaces the session stored under key
func (s *SessionStore) Put(key string, session *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = &storedSession{session: session, touched: s.now()}
}

// Delete removes the session stored under key
func (s *SessionStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

// Update reads, transforms and replaces the session under key in one step.
// fn receives nil when no session exists yet and runs without the store
// lock held. When fn fails the stored session is left untouched and the
// error is returned with it.
func (s *SessionStore) Update(key string, fn func(*domain.Session) (*domain.Session, error)) (*domain.Session, error) {
	release := s.lockKey(key)
	defer release()

	current, _ := s.Get(key)

	next, err := fn(current)
	if err != nil {
		return current, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if next == nil {
		delete(s.sessions, key)
		return nil, nil
	}

	s.sessions[key] = &storedSession{session: next, touched: s.now()}
	return next, nil
}

// EvictIdle removes sessions untouched for longer than ttl and returns how many
func (s *SessionStore) EvictIdle(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	evicted := 0
	for key, stored := range s.sessions {
		if stored.touched.Before(cutoff) {
			delete(s.sessions, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
