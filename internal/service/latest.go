package service

import "sync"

// LatestGuard serializes "latest wins" updates per key. A slow fetch that
// finishes after a newer one started must not overwrite the newer result.
type LatestGuard struct {
	mu  sync.Mutex
	gen map[string]uint64
}

func NewLatestGuard() *LatestGuard {
	return &LatestGuard{gen: make(map[string]uint64)}
}

// Begin registers a new attempt for the key and returns its generation.
func (g *LatestGuard) Begin(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen[key]++
	return g.gen[key]
}

// Commit reports whether the attempt is still the newest one for the key.
// Stale attempts get false and must discard their result.
func (g *LatestGuard) Commit(key string, gen uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen[key] == gen
}
