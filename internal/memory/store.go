// Package memory implements the per-context decision history ring buffer
// and its derivations (spec.md §4.7, component C7).
package memory

import (
	"sync"

	"decision-analysis/internal/model"
)

// Store is the Memory Layer's collaborator interface. The in-process
// implementation below is the default; a persistent-backing implementation
// can be slotted in behind the same interface (spec.md §4.7).
type Store interface {
	Record(contextID string, outcome model.HistoricalOutcome)
	History(contextID string) []model.HistoricalOutcome
	// Unavailable reports whether the most recent Record/History call
	// failed to reach the backing store. The in-process default is never
	// unavailable; MongoStore sets this on a failed Mongo round trip so
	// the orchestrator can surface memory_store_unavailable (spec.md §7).
	Unavailable() bool
}

// defaultRingSize bounds per-context retention when no positive size is
// given; overflow evicts the oldest record.
const defaultRingSize = 50

// InProcessStore is the default Store: one ring buffer per context id,
// guarded by a per-context lock so distinct contexts never contend
// (spec.md §5's "no global lock; operations scale per distinct context id").
type InProcessStore struct {
	ringSize int

	mu       sync.RWMutex
	contexts map[string]*contextRing
}

type contextRing struct {
	mu      sync.RWMutex
	records []model.HistoricalOutcome
}

// NewInProcessStore constructs a store with the given per-context ring
// capacity. A ringSize of 0 uses the default (50).
func NewInProcessStore(ringSize int) *InProcessStore {
	if ringSize <= 0 {
		ringSize = defaultRingSize
	}
	return &InProcessStore{
		ringSize: ringSize,
		contexts: make(map[string]*contextRing),
	}
}

func (s *InProcessStore) ringFor(contextID string) *contextRing {
	s.mu.RLock()
	r, ok := s.contexts[contextID]
	s.mu.RUnlock()
	if ok {
		return r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok = s.contexts[contextID]; ok {
		return r
	}
	r = &contextRing{}
	s.contexts[contextID] = r
	return r
}

// Record appends an outcome, evicting the oldest entry on overflow.
func (s *InProcessStore) Record(contextID string, outcome model.HistoricalOutcome) {
	r := s.ringFor(contextID)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, outcome)
	if len(r.records) > s.ringSize {
		r.records = r.records[len(r.records)-s.ringSize:]
	}
}

// History returns the chronological record list for a context.
func (s *InProcessStore) History(contextID string) []model.HistoricalOutcome {
	r := s.ringFor(contextID)
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.HistoricalOutcome, len(r.records))
	copy(out, r.records)
	return out
}

// Unavailable is always false: the in-process store has no external
// dependency that can fail.
func (s *InProcessStore) Unavailable() bool { return false }
