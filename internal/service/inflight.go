package service

import "sync"

// InFlightSet tracks row-level mutations in progress so one row's pending
// accept/reject only disables that row, not the whole table.
type InFlightSet struct {
	mu  sync.Mutex
	ids map[uint64]struct{}
}

func NewInFlightSet() *InFlightSet {
	return &InFlightSet{ids: make(map[uint64]struct{})}
}

// TryBegin marks the id as busy; false means a mutation for it is already
// running and the caller should drop the duplicate.
func (s *InFlightSet) TryBegin(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.ids[id]; busy {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *InFlightSet) End(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

func (s *InFlightSet) Active(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, busy := s.ids[id]
	return busy
}

// ActiveIDs snapshots the busy set for view rendering.
func (s *InFlightSet) ActiveIDs() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
