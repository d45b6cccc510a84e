package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/core/metrics"
)

type sessionEntry struct {
	slots    *Slots
	lastSeen time.Time
}

// Sessions hands out one Slots table per session id so concurrent users never
// observe each other's cached views.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	log     *logger.Logger
	now     func() time.Time
}

func NewSessions(log *logger.Logger) *Sessions {
	if log == nil {
		log = logger.Default()
	}
	return &Sessions{
		entries: make(map[string]*sessionEntry),
		log:     log.WithComponent("cache"),
		now:     time.Now,
	}
}

// NewID returns a fresh session id.
func (s *Sessions) NewID() string {
	return uuid.NewString()
}

// Get returns the slots of session id, creating them on first use.
func (s *Sessions) Get(id string) *Slots {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		e = &sessionEntry{slots: NewSlots(s.log.WithComponent("session:" + id))}
		s.entries[id] = e
		metrics.CacheSessions.Set(float64(len(s.entries)))
	}
	e.lastSeen = s.now()
	return e.slots
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Drop forgets a session.
func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	metrics.CacheSessions.Set(float64(len(s.entries)))
	s.mu.Unlock()
}

// Invalidate drops slots built from tables in every session.
func (s *Sessions) Invalidate(tables ...string) int {
	s.mu.Lock()
	all := make([]*Slots, 0, len(s.entries))
	for _, e := range s.entries {
		all = append(all, e.slots)
	}
	s.mu.Unlock()

	n := 0
	for _, sl := range all {
		n += sl.Invalidate(tables...)
	}
	return n
}

// Prune drops sessions idle for longer than maxIdle.
func (s *Sessions) Prune(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			n++
		}
	}
	metrics.CacheSessions.Set(float64(len(s.entries)))
	if n > 0 {
		s.log.Info("pruned idle sessions", "count", n, "remaining", len(s.entries))
	}
	return n
}
