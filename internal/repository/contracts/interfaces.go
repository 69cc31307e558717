package contracts

import (
	"context"
	"time"

	"github.com/mlenz/tapspace/internal/domain/attendance"
	"github.com/mlenz/tapspace/internal/domain/identity"
	"github.com/mlenz/tapspace/internal/domain/space"
)

// SpaceRepository manages space persistence
type SpaceRepository interface {
	Create(ctx context.Context, sp *space.Space) error
	Get(ctx context.Context, id string) (*space.Space, error)
	Update(ctx context.Context, sp *space.Space) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]space.Space, error)
	FindByTag(ctx context.Context, tagID string) (*space.Space, error)
}

// IntervalRepository manages attendance interval persistence
type IntervalRepository interface {
	Create(ctx context.Context, iv *attendance.Interval) error
	FindOpen(ctx context.Context, username, spaceName string) (*attendance.Interval, error)
	SetEnd(ctx context.Context, id string, end time.Time) error
	ListByUser(ctx context.Context, username string) ([]attendance.Interval, error)
	DeleteAll(ctx context.Context) error
}

// CredentialRepository manages the fixed credential tables
type CredentialRepository interface {
	Lookup(ctx context.Context, role identity.Role, username string) (*identity.Credential, error)
	Seed(ctx context.Context, creds []identity.Credential) error
}

// SettingRepository manages small key/value settings
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
