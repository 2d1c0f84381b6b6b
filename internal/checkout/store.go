package checkout

import (
	"sync"
	"time"

	"luminacine/pkg/metrics"

	"github.com/google/uuid"
)

type storeEntry struct {
	flow    *Flow
	owner   string
	touched time.Time
}

// Store holds the open flows of every session.
type Store struct {
	mu    sync.Mutex
	flows map[uuid.UUID]*storeEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		flows: make(map[uuid.UUID]*storeEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Open registers flow under owner, typically the session ID.
func (s *Store) Open(owner string, flow *Flow) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.flows[flow.ID()] = &storeEntry{flow: flow, owner: owner, touched: s.now()}
	metrics.SetOpenFlows(len(s.flows))
	return flow.ID()
}

// Get returns the flow when owner opened it. Flows of other owners look
// exactly like missing ones.
func (s *Store) Get(id uuid.UUID, owner string) (*Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.flows[id]
	if !ok || entry.owner != owner {
		return nil, ErrFlowNotFound
	}

	entry.touched = s.now()
	return entry.flow, nil
}

// Close closes and forgets the flow.
func (s *Store) Close(id uuid.UUID, owner string) error {
	s.mu.Lock()
	entry, ok := s.flows[id]
	if !ok || entry.owner != owner {
		s.mu.Unlock()
		return ErrFlowNotFound
	}
	delete(s.flows, id)
	metrics.SetOpenFlows(len(s.flows))
	s.mu.Unlock()

	entry.flow.Close()
	return nil
}

// CloseOwner closes every flow of owner, used when a session ends.
func (s *Store) CloseOwner(owner string) int {
	s.mu.Lock()
	var closing []*Flow
	for id, entry := range s.flows {
		if entry.owner == owner {
			closing = append(closing, entry.flow)
			delete(s.flows, id)
		}
	}
	metrics.SetOpenFlows(len(s.flows))
	s.mu.Unlock()

	for _, flow := range closing {
		flow.Close()
	}
	return len(closing)
}

// Sweep closes flows idle for longer than the TTL and returns how many.
func (s *Store) Sweep() int {
	s.mu.Lock()
	cutoff := s.now().Add(-s.ttl)
	var expired []*Flow
	for id, entry := range s.flows {
		if entry.touched.Before(cutoff) {
			expired = append(expired, entry.flow)
			delete(s.flows, id)
		}
	}
	metrics.SetOpenFlows(len(s.flows))
	s.mu.Unlock()

	for _, flow := range expired {
		flow.Close()
	}
	return len(expired)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}
