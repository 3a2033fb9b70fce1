package usecase

import "sync"

// sessionLocks serializes turns per session id. Two concurrent messages on
// the same session would otherwise race on read-modify-write against the
// session store; distinct sessions never block each other.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: map[string]*lockEntry{}}
}

// acquire blocks until the per-session lock is held and returns the release
// func. Entries are refcounted so the map does not grow with dead sessions.
func (s *sessionLocks) acquire(id string) func() {
	s.mu.Lock()
	e, ok := s.locks[id]
	if !ok {
		e = &lockEntry{}
		s.locks[id] = e
	}
	e.refs++
	s.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		s.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}
