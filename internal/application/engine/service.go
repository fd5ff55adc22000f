package engine

import (
	"sync"

	"github.com/brachisto/brachisto-go/internal/domain/sim"
)

// Service serializes access to a simulation engine. Command handlers,
// query handlers, the tick loop and persistence all route through the
// same mutex so the engine itself stays single-threaded.
type Service struct {
	mu  sync.Mutex
	eng *sim.Engine
}

// NewService creates a service wrapping the given engine
func NewService(eng *sim.Engine) *Service {
	return &Service{eng: eng}
}

// With runs fn while holding the engine lock
func (s *Service) With(fn func(*sim.Engine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.eng)
}

// Tick advances the simulation by deltaDays
func (s *Service) Tick(deltaDays float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.Tick(deltaDays)
}

// Snapshot returns a point-in-time view of the simulation
func (s *Service) Snapshot() *sim.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Snapshot()
}

// Restore replaces the engine state from a saved snapshot
func (s *Service) Restore(snap *sim.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.Restore(snap)
}
