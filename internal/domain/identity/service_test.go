package identity_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mlenz/tapspace/internal/domain/identity"
	"github.com/mlenz/tapspace/internal/repository"
	"github.com/mlenz/tapspace/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogin_ModeratorTableCheckedFirst(t *testing.T) {
	ctx := context.Background()
	creds := &mocks.CredentialRepository{}

	creds.On("Lookup", ctx, identity.RoleModerator, "pat").Return(&identity.Credential{
		Username: "pat",
		Password: "secret",
		Role:     identity.RoleModerator,
	}, nil)

	svc := identity.NewService(creds, testLogger())
	ident, err := svc.Login(ctx, "pat", "secret")
	require.NoError(t, err)
	require.Equal(t, "pat", ident.Username)
	require.Equal(t, identity.RoleModerator, ident.Role)

	// Student table is never consulted when the moderator table matches.
	creds.AssertNotCalled(t, "Lookup", ctx, identity.RoleStudent, "pat")
}

func TestLogin_FallsThroughToStudentTable(t *testing.T) {
	ctx := context.Background()
	creds := &mocks.CredentialRepository{}

	creds.On("Lookup", ctx, identity.RoleModerator, "alice").Return(nil, repository.ErrNotFound)
	creds.On("Lookup", ctx, identity.RoleStudent, "alice").Return(&identity.Credential{
		Username: "alice",
		Password: "pw",
		Role:     identity.RoleStudent,
	}, nil)

	svc := identity.NewService(creds, testLogger())
	ident, err := svc.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, identity.RoleStudent, ident.Role)
}

func TestLogin_BadPassword(t *testing.T) {
	ctx := context.Background()
	creds := &mocks.CredentialRepository{}

	creds.On("Lookup", ctx, identity.RoleModerator, "alice").Return(nil, repository.ErrNotFound)
	creds.On("Lookup", ctx, identity.RoleStudent, "alice").Return(&identity.Credential{
		Username: "alice",
		Password: "pw",
		Role:     identity.RoleStudent,
	}, nil)

	svc := identity.NewService(creds, testLogger())
	ident, err := svc.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, identity.ErrBadCredentials)
	require.Nil(t, ident)
}

func TestLogin_UnknownUser(t *testing.T) {
	ctx := context.Background()
	creds := &mocks.CredentialRepository{}

	creds.On("Lookup", ctx, identity.RoleModerator, "ghost").Return(nil, repository.ErrNotFound)
	creds.On("Lookup", ctx, identity.RoleStudent, "ghost").Return(nil, repository.ErrNotFound)

	svc := identity.NewService(creds, testLogger())
	_, err := svc.Login(ctx, "ghost", "pw")
	require.ErrorIs(t, err, identity.ErrBadCredentials)
}

func TestLogin_EmptyInput(t *testing.T) {
	svc := identity.NewService(&mocks.CredentialRepository{}, testLogger())
	_, err := svc.Login(context.Background(), "", "pw")
	require.ErrorIs(t, err, identity.ErrInvalidInput)
	_, err = svc.Login(context.Background(), "alice", "")
	require.ErrorIs(t, err, identity.ErrInvalidInput)
}
