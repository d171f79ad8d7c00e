package debounce

import (
	"sync"
	"time"
)

// Sessions hands out one Debouncer per key, typically one per open form
// entries idle for longer than ttl are dropped on access, with full sweeps
// at most once per ttl/2
type Sessions struct {
	wait time.Duration
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	m         map[string]*session
	lastSweep time.Time
}

type session struct {
	d    *Debouncer
	seen time.Time
}

// NewSessions builds a registry whose debouncers wait for wait of quiet
func NewSessions(wait, ttl time.Duration) *Sessions {
	return &Sessions{wait: wait, ttl: ttl, now: time.Now, m: make(map[string]*session)}
}

// Get returns the debouncer for key, creating it when needed
func (s *Sessions) Get(key string) *Debouncer {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	e, ok := s.m[key]
	if ok && s.expired(e, now) {
		ok = false
	}
	if !ok {
		e = &session{d: New(s.wait)}
		s.m[key] = e
	}
	e.seen = now
	return e.d
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *Sessions) expired(e *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.seen) > s.ttl
}

func (s *Sessions) sweepLocked(now time.Time) {
	if s.ttl <= 0 || now.Sub(s.lastSweep) < s.ttl/2 {
		return
	}
	s.lastSweep = now
	for k, e := range s.m {
		if s.expired(e, now) {
			delete(s.m, k)
		}
	}
}
