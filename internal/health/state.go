// Package health holds the process-wide store connectivity state. The probe
// runs once at startup and again only on explicit request, so read paths can
// check a cached flag instead of pinging the store per request.
package health

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Pinger is the liveness probe target; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type State struct {
	mu        sync.RWMutex
	connected bool
	probedAt  time.Time
	pinger    Pinger
	logger    *slog.Logger
}

func NewState(pinger Pinger, logger *slog.Logger) *State {
	return &State{pinger: pinger, logger: logger}
}

// Reprobe runs the liveness probe and caches the verdict. A nil pinger means
// the store connection was never opened; that counts as disconnected.
func (s *State) Reprobe(ctx context.Context) bool {
	connected := false
	if s.pinger != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := s.pinger.PingContext(ctx); err != nil {
			s.logger.Warn("store connectivity probe failed", "error", err)
		} else {
			connected = true
		}
	} else {
		s.logger.Warn("store connectivity probe skipped: no connection configured")
	}

	s.mu.Lock()
	s.connected = connected
	s.probedAt = time.Now()
	s.mu.Unlock()

	if connected {
		s.logger.Info("store connectivity probe succeeded")
	}
	return connected
}

// Connected reports the cached verdict of the last probe.
func (s *State) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// ProbedAt reports when the last probe ran; zero if it never did.
func (s *State) ProbedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.probedAt
}
