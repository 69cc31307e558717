package attendance

import (
	"context"
	"time"

	"github.com/mlenz/tapspace/internal/domain/space"
)

// IntervalRepository provides persistence for attendance intervals.
type IntervalRepository interface {
	Create(ctx context.Context, iv *Interval) error
	// FindOpen returns the most recently started open interval for the
	// exact (username, spaceName) pair.
	FindOpen(ctx context.Context, username, spaceName string) (*Interval, error)
	SetEnd(ctx context.Context, id string, end time.Time) error
	ListByUser(ctx context.Context, username string) ([]Interval, error)
	DeleteAll(ctx context.Context) error
}

// SpaceDirectory is the slice of the space registry the engine needs:
// tag resolution, the current selection, and selecting a space on entry.
type SpaceDirectory interface {
	Current(ctx context.Context) (*space.Space, error)
	SetCurrent(ctx context.Context, id string) error
	ResolveTag(ctx context.Context, payload string) (*space.Space, error)
}

// Gateway is the platform facility that enforces app restrictions. The
// engine only toggles it and reads the authorization flag; Enable and
// Disable are idempotent.
type Gateway interface {
	RequestAuthorization(ctx context.Context) error
	Authorized() bool
	Enable(ctx context.Context, cfg space.RestrictionConfig) error
	Disable(ctx context.Context) error
}
