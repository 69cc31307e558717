package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mlenz/tapspace/internal/domain/identity"
	"github.com/mlenz/tapspace/internal/domain/space"
	"github.com/mlenz/tapspace/internal/repository"
)

// Engine owns the session state machine: it starts and ends attendance
// intervals, enforces one open interval per (user, space) pair, and toggles
// the restriction gateway in step. Whether a pair is blocking is derived
// from the existence of an open interval; there is no separate flag.
type Engine struct {
	intervals IntervalRepository
	spaces    SpaceDirectory
	gateway   Gateway
	logger    *slog.Logger

	// Serializes state transitions. Reads (reports, blocking queries)
	// go straight to the store.
	mu sync.Mutex
}

// NewEngine creates a new session engine.
func NewEngine(intervals IntervalRepository, spaces SpaceDirectory, gateway Gateway, logger *slog.Logger) *Engine {
	return &Engine{
		intervals: intervals,
		spaces:    spaces,
		gateway:   gateway,
		logger:    logger,
	}
}

// StartRequest describes an explicit session start.
type StartRequest struct {
	SpaceID             string
	Category            TaskCategory
	RestrictionOverride *space.RestrictionConfig
}

// ScanRequest describes a tag scan. Category and the optional restriction
// override are chosen in the surrounding UI before scanning.
type ScanRequest struct {
	Payload             string
	Category            TaskCategory
	RestrictionOverride *space.RestrictionConfig
}

// ScanResult reports which transition a scan performed.
type ScanResult struct {
	Started  bool      `json:"started"`
	Interval *Interval `json:"interval,omitempty"`
	Space    string    `json:"space,omitempty"`
}

// Scan runs one step of the state machine for the signed-in user. While an
// open interval exists for the user in the current space, any scan ends it;
// no tag or roster check applies on the way out, so ending can never be
// blocked by a tag mismatch. Otherwise the scan is a start attempt: the tag
// must resolve, the user must be eligible, a category must be selected, and
// the gateway must be authorized before an interval opens. Every failure
// leaves state unchanged and the user may immediately retry.
func (e *Engine) Scan(ctx context.Context, ident identity.Identity, req ScanRequest) (*ScanResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current, err := e.spaces.Current(ctx)
	if err != nil && !errors.Is(err, space.ErrSpaceNotFound) {
		return nil, fmt.Errorf("loading current space: %w", err)
	}

	if current != nil {
		open, err := e.intervals.FindOpen(ctx, ident.Username, current.Name)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("checking open interval: %w", err)
		}
		if open != nil {
			closed, err := e.end(ctx, ident.Username, current.Name)
			if err != nil {
				return nil, err
			}
			return &ScanResult{Started: false, Interval: closed, Space: current.Name}, nil
		}
	}

	target, err := e.spaces.ResolveTag(ctx, req.Payload)
	if err != nil {
		return nil, err
	}

	iv, err := e.start(ctx, ident, target, req.Category, req.RestrictionOverride)
	if err != nil {
		return nil, err
	}
	return &ScanResult{Started: true, Interval: iv, Space: target.Name}, nil
}

// StartSession opens an interval in an explicitly chosen space, bypassing
// tag resolution. Used by the presentation layer's direct start call.
func (e *Engine) StartSession(ctx context.Context, ident identity.Identity, target *space.Space, req StartRequest) (*Interval, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start(ctx, ident, target, req.Category, req.RestrictionOverride)
}

// EndSession closes the most recently started open interval for the pair
// and disables enforcement. A missing interval is logged but never blocks
// teardown: bookkeeping fails open, restriction removal fails closed.
func (e *Engine) EndSession(ctx context.Context, username, spaceName string) (*Interval, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.end(ctx, username, spaceName)
}

// IsBlocking reports whether an open interval exists for the pair. This is
// the single source of truth for the blocking state.
func (e *Engine) IsBlocking(ctx context.Context, username, spaceName string) (bool, error) {
	_, err := e.intervals.FindOpen(ctx, username, spaceName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("checking open interval: %w", err)
	}
	return true, nil
}

// ClearHistory bulk-clears the whole interval history. Intervals are never
// deleted individually; this moderator action is the only delete path.
func (e *Engine) ClearHistory(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.intervals.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	e.logger.Info("attendance history cleared")
	return nil
}

func (e *Engine) start(ctx context.Context, ident identity.Identity, target *space.Space, category TaskCategory, override *space.RestrictionConfig) (*Interval, error) {
	if target == nil {
		return nil, ErrInvalidInput
	}
	if target.HasRoster() && ident.Role == identity.RoleStudent && !target.Assigned(ident.Username) {
		return nil, ErrNotEligible
	}
	if category == "" {
		return nil, ErrNoTaskCategory
	}
	if !category.Valid() {
		return nil, ErrInvalidInput
	}
	if !e.gateway.Authorized() {
		return nil, ErrNotAuthorized
	}

	existing, err := e.intervals.FindOpen(ctx, ident.Username, target.Name)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking open interval: %w", err)
	}
	if existing != nil {
		return nil, ErrSessionActive
	}

	iv := &Interval{
		ID:           uuid.NewString(),
		Username:     ident.Username,
		SpaceName:    target.Name,
		StartTime:    time.Now(),
		TaskCategory: &category,
	}
	if err := e.intervals.Create(ctx, iv); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrSessionActive
		}
		return nil, fmt.Errorf("opening interval: %w", err)
	}

	restriction := target.Restriction
	if target.UsersChooseOwnRestriction && ident.Role == identity.RoleStudent && override != nil {
		restriction = *override
	}
	if err := e.gateway.Enable(ctx, restriction); err != nil {
		// Roll the interval back so a gateway fault doesn't leave a
		// phantom open session with no enforcement.
		now := time.Now()
		if closeErr := e.intervals.SetEnd(ctx, iv.ID, now); closeErr != nil {
			e.logger.Error("failed to close interval after gateway fault",
				"interval", iv.ID, "error", closeErr)
		}
		return nil, fmt.Errorf("enabling restriction: %w", err)
	}

	if err := e.spaces.SetCurrent(ctx, target.ID); err != nil {
		e.logger.Warn("failed to select entered space", "space", target.ID, "error", err)
	}

	e.logger.Info("session started",
		"user", ident.Username, "space", target.Name, "category", category)
	return iv, nil
}

func (e *Engine) end(ctx context.Context, username, spaceName string) (*Interval, error) {
	var closed *Interval

	open, err := e.intervals.FindOpen(ctx, username, spaceName)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		e.logger.Warn("no open interval to close",
			"user", username, "space", spaceName)
	case err != nil:
		e.logger.Warn("failed to look up open interval",
			"user", username, "space", spaceName, "error", err)
	default:
		now := time.Now()
		if err := e.intervals.SetEnd(ctx, open.ID, now); err != nil {
			e.logger.Warn("failed to close interval",
				"interval", open.ID, "error", err)
		} else {
			open.EndTime = &now
			closed = open
		}
	}

	// Enforcement comes off regardless of bookkeeping.
	if err := e.gateway.Disable(ctx); err != nil {
		return closed, fmt.Errorf("disabling restriction: %w", err)
	}

	e.logger.Info("session ended", "user", username, "space", spaceName)
	return closed, nil
}
