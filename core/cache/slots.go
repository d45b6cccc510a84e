package cache

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/core/metrics"
)

const slotPrefix = "slot:"

// Source describes how to materialize one named slot and which tables it reads.
type Source[T any] struct {
	Slot   string
	Tables []string
	Fetch  func(ctx context.Context) ([]T, error)
}

// Slots is the per-session table of named cache slots. tables remembers the
// tags each slot was last stored with so a re-tagged slot drops the old ones.
type Slots struct {
	cache  *Cache
	log    *logger.Logger
	mu     sync.Mutex
	tables map[string][]string
}

func NewSlots(log *logger.Logger) *Slots {
	if log == nil {
		log = logger.Default()
	}
	return &Slots{cache: NewCache(), log: log, tables: make(map[string][]string)}
}

func slotKey(name string) string { return slotPrefix + name }

// Reset calls src.Fetch and replaces the slot with its result. A failed fetch
// stores an empty result and is logged, never returned.
func Reset[T any](ctx context.Context, s *Slots, src Source[T]) []T {
	rows, err := src.Fetch(ctx)
	metrics.CacheResets.WithLabelValues(src.Slot, metrics.Outcome(err)).Inc()
	if err != nil {
		s.log.Error("failed to cache slot", "slot", src.Slot, "error", err)
		rows = []T{}
	} else {
		s.log.Debug("cached slot", "slot", src.Slot, "rows", len(rows))
	}
	s.store(src.Slot, rows, src.Tables)
	return rows
}

func (s *Slots) store(slot string, rows any, tables []string) {
	key := slotKey(slot)
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.tables[slot]; ok {
		s.cache.UntagKey(key, prev)
	}
	s.cache.Set(key, rows, 0, tables)
	s.tables[slot] = append([]string(nil), tables...)
}

// Peek returns the slot content without fetching.
func Peek[T any](s *Slots, slot string) ([]T, bool) {
	v, ok := s.cache.Get(slotKey(slot))
	if !ok {
		return nil, false
	}
	rows, ok := v.([]T)
	return rows, ok
}

// Load returns the slot content, resetting it first when absent.
func Load[T any](ctx context.Context, s *Slots, src Source[T]) []T {
	if rows, ok := Peek[T](s, src.Slot); ok {
		metrics.CacheLoads.WithLabelValues(src.Slot, "hit").Inc()
		return rows
	}
	metrics.CacheLoads.WithLabelValues(src.Slot, "miss").Inc()
	return Reset(ctx, s, src)
}

// Invalidate drops every slot built from any of tables and returns how many were dropped.
func (s *Slots) Invalidate(tables ...string) int {
	n := 0
	for _, t := range tables {
		n += s.cache.DeleteByTag(t)
	}
	if n > 0 {
		s.log.Debug("invalidated slots", "tables", tables, "dropped", n)
	}
	return n
}

// Names lists the populated slot names, sorted.
func (s *Slots) Names() []string {
	var names []string
	for _, k := range s.cache.Keys() {
		if ks, ok := k.(string); ok && strings.HasPrefix(ks, slotPrefix) {
			names = append(names, strings.TrimPrefix(ks, slotPrefix))
		}
	}
	sort.Strings(names)
	return names
}
