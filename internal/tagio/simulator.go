package tagio

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Simulator fabricates tag responses after a fixed short delay, standing in
// for platform tag hardware where it is unavailable. It keeps the session
// engine exercisable end to end without a physical tag.
type Simulator struct {
	logger *slog.Logger
	delay  time.Duration

	mu      sync.Mutex
	payload string
	written []string
}

// NewSimulator creates a simulator that answers every scan with payload.
func NewSimulator(payload string, delay time.Duration, logger *slog.Logger) *Simulator {
	return &Simulator{logger: logger, delay: delay, payload: payload}
}

// Scan returns the configured payload after the configured delay, or the
// context error if cancelled first.
func (s *Simulator) Scan(ctx context.Context) (string, error) {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ErrScanInvalidated
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Debug("simulated tag scan", "payload", s.payload)
	return s.payload, nil
}

// Write records the payload and makes subsequent scans return it, the way
// writing a physical tag would.
func (s *Simulator) Write(ctx context.Context, payload string) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ErrScanInvalidated
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = payload
	s.written = append(s.written, payload)
	s.logger.Debug("simulated tag write", "payload", payload)
	return nil
}

// Written returns every payload written so far, oldest first.
func (s *Simulator) Written() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.written))
	copy(out, s.written)
	return out
}
