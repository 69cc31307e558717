// Package restrict abstracts the platform facility that enforces app
// restrictions. The session engine only toggles enforcement and reads the
// authorization flag; the real enforcement mechanism lives outside this
// repository.
package restrict

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mlenz/tapspace/internal/domain/space"
)

// ErrNotAuthorized is returned by Enable when authorization has not been
// granted.
var ErrNotAuthorized = errors.New("restriction authorization not granted")

// Gateway enforces app restrictions. Enable and Disable are idempotent.
type Gateway interface {
	RequestAuthorization(ctx context.Context) error
	Authorized() bool
	Enable(ctx context.Context, cfg space.RestrictionConfig) error
	Disable(ctx context.Context) error
}

// Simulated is an in-memory gateway for environments without the platform
// restriction facility, and for tests.
type Simulated struct {
	logger *slog.Logger
	grant  bool

	mu         sync.Mutex
	authorized bool
	enabled    bool
	active     space.RestrictionConfig
}

// NewSimulated creates a simulated gateway. Authorization starts denied
// until RequestAuthorization is called (pass grantOnRequest=false to
// simulate a user who declines).
func NewSimulated(grantOnRequest bool, logger *slog.Logger) *Simulated {
	return &Simulated{logger: logger, authorized: false, grant: grantOnRequest}
}

// RequestAuthorization asks the platform for permission to restrict apps.
func (g *Simulated) RequestAuthorization(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authorized = g.grant
	g.logger.Info("restriction authorization requested", "granted", g.authorized)
	return nil
}

// Authorized reports whether enforcement may be enabled.
func (g *Simulated) Authorized() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authorized
}

// Enable turns enforcement on with the given restriction set.
func (g *Simulated) Enable(ctx context.Context, cfg space.RestrictionConfig) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.authorized {
		return ErrNotAuthorized
	}
	g.enabled = true
	g.active = cfg
	g.logger.Info("restriction enabled",
		"apps", len(cfg.Apps), "categories", len(cfg.Categories))
	return nil
}

// Disable turns enforcement off. Disabling an already-idle gateway is a
// no-op.
func (g *Simulated) Disable(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = false
	g.active = space.RestrictionConfig{}
	g.logger.Info("restriction disabled")
	return nil
}

// Enabled reports whether enforcement is currently on.
func (g *Simulated) Enabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled
}

// Active returns the restriction set currently enforced.
func (g *Simulated) Active() space.RestrictionConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}
