package utils

import (
	"sync"
	"time"
)

// Stopwatch measures named phases of a run (map, plan, parse, merge).
// Phases are reported in start order. Safe for concurrent use, though
// each phase is expected to be started and stopped by one goroutine.
type Stopwatch struct {
	mu     sync.Mutex
	clock  Clock
	start  time.Time
	order  []string
	phases map[string]time.Duration
	open   map[string]time.Time
}

// NewStopwatch creates a started Stopwatch. A nil clock uses real time.
func NewStopwatch(clock Clock) *Stopwatch {
	if clock == nil {
		clock = NewRealClock()
	}
	return &Stopwatch{
		clock:  clock,
		start:  clock.Now(),
		phases: make(map[string]time.Duration),
		open:   make(map[string]time.Time),
	}
}

// StartPhase begins timing the named phase.
func (s *Stopwatch) StartPhase(name string) {
	s.mu.Lock()
	if _, seen := s.phases[name]; !seen {
		if _, running := s.open[name]; !running {
			s.order = append(s.order, name)
		}
	}
	s.open[name] = s.clock.Now()
	s.mu.Unlock()
}

// StopPhase ends the named phase and returns its duration. Stopping a
// phase that was never started returns zero.
func (s *Stopwatch) StopPhase(name string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	begin, ok := s.open[name]
	if !ok {
		return 0
	}
	delete(s.open, name)
	d := s.clock.Since(begin)
	s.phases[name] += d
	return d
}

// Phase returns the accumulated duration of a completed phase.
func (s *Stopwatch) Phase(name string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phases[name]
}

// Elapsed returns the total time since the stopwatch was created.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clock.Since(s.start)
}

// Report logs one line per phase plus the total.
func (s *Stopwatch) Report(logger Logger) {
	if logger == nil {
		return
	}
	s.mu.Lock()
	order := append([]string(nil), s.order...)
	phases := make(map[string]time.Duration, len(s.phases))
	for k, v := range s.phases {
		phases[k] = v
	}
	total := s.clock.Since(s.start)
	s.mu.Unlock()

	for _, name := range order {
		logger.Debug("phase %s took %v", name, phases[name])
	}
	logger.Debug("total elapsed %v", total)
}
