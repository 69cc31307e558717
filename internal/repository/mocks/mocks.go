package mocks

import (
	"context"
	"time"

	"github.com/mlenz/tapspace/internal/domain/attendance"
	"github.com/mlenz/tapspace/internal/domain/identity"
	"github.com/mlenz/tapspace/internal/domain/space"
	"github.com/stretchr/testify/mock"
)

// SpaceRepository is a mock for repository.SpaceRepository.
type SpaceRepository struct {
	mock.Mock
}

func (m *SpaceRepository) Create(ctx context.Context, sp *space.Space) error {
	args := m.Called(ctx, sp)
	return args.Error(0)
}

func (m *SpaceRepository) Get(ctx context.Context, id string) (*space.Space, error) {
	args := m.Called(ctx, id)
	if sp, ok := args.Get(0).(*space.Space); ok {
		return sp, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SpaceRepository) Update(ctx context.Context, sp *space.Space) error {
	args := m.Called(ctx, sp)
	return args.Error(0)
}

func (m *SpaceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SpaceRepository) List(ctx context.Context) ([]space.Space, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]space.Space); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SpaceRepository) FindByTag(ctx context.Context, tagID string) (*space.Space, error) {
	args := m.Called(ctx, tagID)
	if sp, ok := args.Get(0).(*space.Space); ok {
		return sp, args.Error(1)
	}
	return nil, args.Error(1)
}

// IntervalRepository is a mock for repository.IntervalRepository.
type IntervalRepository struct {
	mock.Mock
}

func (m *IntervalRepository) Create(ctx context.Context, iv *attendance.Interval) error {
	args := m.Called(ctx, iv)
	return args.Error(0)
}

func (m *IntervalRepository) FindOpen(ctx context.Context, username, spaceName string) (*attendance.Interval, error) {
	args := m.Called(ctx, username, spaceName)
	if iv, ok := args.Get(0).(*attendance.Interval); ok {
		return iv, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IntervalRepository) SetEnd(ctx context.Context, id string, end time.Time) error {
	args := m.Called(ctx, id, end)
	return args.Error(0)
}

func (m *IntervalRepository) ListByUser(ctx context.Context, username string) ([]attendance.Interval, error) {
	args := m.Called(ctx, username)
	if list, ok := args.Get(0).([]attendance.Interval); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IntervalRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// CredentialRepository is a mock for repository.CredentialRepository.
type CredentialRepository struct {
	mock.Mock
}

func (m *CredentialRepository) Lookup(ctx context.Context, role identity.Role, username string) (*identity.Credential, error) {
	args := m.Called(ctx, role, username)
	if cred, ok := args.Get(0).(*identity.Credential); ok {
		return cred, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CredentialRepository) Seed(ctx context.Context, creds []identity.Credential) error {
	args := m.Called(ctx, creds)
	return args.Error(0)
}

// SettingRepository is a mock for repository.SettingRepository.
type SettingRepository struct {
	mock.Mock
}

func (m *SettingRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *SettingRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *SettingRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
