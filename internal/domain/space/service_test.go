package space_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mlenz/tapspace/internal/domain/space"
	"github.com/mlenz/tapspace/internal/repository"
	"github.com/mlenz/tapspace/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdd_MakesNewSpaceCurrent(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	repo.On("Create", ctx, mock.Anything).Return(nil)
	settings.On("Set", ctx, "current_space_id", mock.Anything).Return(nil)

	svc := space.NewService(repo, settings, testLogger())
	sp, err := svc.Add(ctx, space.CreateRequest{Name: "Room A"})
	require.NoError(t, err)
	require.NotEmpty(t, sp.ID)

	settings.AssertCalled(t, "Set", ctx, "current_space_id", sp.ID)
}

func TestAdd_RejectsBlankName(t *testing.T) {
	svc := space.NewService(&mocks.SpaceRepository{}, &mocks.SettingRepository{}, testLogger())
	_, err := svc.Add(context.Background(), space.CreateRequest{Name: "   "})
	require.ErrorIs(t, err, space.ErrInvalidInput)
}

func TestUpdate_SparsePatchLeavesOtherFieldsUntouched(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	existing := &space.Space{
		ID:            "s1",
		Name:          "Room A",
		Icon:          "book",
		AssignedUsers: []string{"alice"},
		TagID:         "TAG-A",
	}
	repo.On("Get", ctx, "s1").Return(existing, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)
	settings.On("Get", ctx, "current_space_id").Return("", repository.ErrNotFound)

	svc := space.NewService(repo, settings, testLogger())
	newName := "Room B"
	updated, err := svc.Update(ctx, "s1", space.UpdateRequest{Name: &newName})
	require.NoError(t, err)

	require.Equal(t, "Room B", updated.Name)
	require.Equal(t, "book", updated.Icon)
	require.Equal(t, []string{"alice"}, updated.AssignedUsers)
	require.Equal(t, "TAG-A", updated.TagID)
}

func TestDelete_CurrentFallsBackToFirstRemaining(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	repo.On("Delete", ctx, "s1").Return(nil)
	settings.On("Get", ctx, "current_space_id").Return("s1", nil)
	repo.On("List", ctx).Return([]space.Space{{ID: "s2", Name: "Room B"}}, nil)
	settings.On("Set", ctx, "current_space_id", "s2").Return(nil)

	svc := space.NewService(repo, settings, testLogger())
	require.NoError(t, svc.Delete(ctx, "s1"))

	settings.AssertCalled(t, "Set", ctx, "current_space_id", "s2")
}

func TestDelete_LastSpaceClearsSelection(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	repo.On("Delete", ctx, "s1").Return(nil)
	settings.On("Get", ctx, "current_space_id").Return("s1", nil)
	repo.On("List", ctx).Return([]space.Space{}, nil)
	settings.On("Delete", ctx, "current_space_id").Return(nil)

	svc := space.NewService(repo, settings, testLogger())
	require.NoError(t, svc.Delete(ctx, "s1"))

	settings.AssertCalled(t, "Delete", ctx, "current_space_id")
}

func TestDelete_NonCurrentKeepsSelection(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	repo.On("Delete", ctx, "s2").Return(nil)
	settings.On("Get", ctx, "current_space_id").Return("s1", nil)

	svc := space.NewService(repo, settings, testLogger())
	require.NoError(t, svc.Delete(ctx, "s2"))

	settings.AssertNotCalled(t, "Set", ctx, "current_space_id", mock.Anything)
}

func TestEnsureDefault_SynthesizesOnFirstRun(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	repo.On("List", ctx).Return([]space.Space{}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(sp *space.Space) bool {
		return sp.Name == space.DefaultName && sp.Restriction.Empty()
	})).Return(nil)
	settings.On("Get", ctx, "current_space_id").Return("", repository.ErrNotFound)
	settings.On("Set", ctx, "current_space_id", mock.Anything).Return(nil)

	svc := space.NewService(repo, settings, testLogger())
	require.NoError(t, svc.EnsureDefault(ctx))

	repo.AssertExpectations(t)
}

func TestEnsureDefault_PrefersDefaultNameWhenUnset(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	repo.On("List", ctx).Return([]space.Space{
		{ID: "s1", Name: "Room A"},
		{ID: "s2", Name: space.DefaultName},
	}, nil)
	settings.On("Get", ctx, "current_space_id").Return("", repository.ErrNotFound)
	settings.On("Set", ctx, "current_space_id", "s2").Return(nil)

	svc := space.NewService(repo, settings, testLogger())
	require.NoError(t, svc.EnsureDefault(ctx))

	settings.AssertCalled(t, "Set", ctx, "current_space_id", "s2")
}

func TestEnsureDefault_KeepsValidSelection(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	repo.On("List", ctx).Return([]space.Space{{ID: "s1", Name: "Room A"}}, nil)
	settings.On("Get", ctx, "current_space_id").Return("s1", nil)

	svc := space.NewService(repo, settings, testLogger())
	require.NoError(t, svc.EnsureDefault(ctx))

	settings.AssertNotCalled(t, "Set", ctx, "current_space_id", mock.Anything)
}

func TestResolveTag_NotFoundIsNeverAFallback(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	repo.On("FindByTag", ctx, "TAG-UNKNOWN").Return(nil, repository.ErrNotFound)

	svc := space.NewService(repo, settings, testLogger())
	sp, err := svc.ResolveTag(ctx, "TAG-UNKNOWN")
	require.ErrorIs(t, err, space.ErrTagNotFound)
	require.Nil(t, sp)
}

func TestResolveTag_EmptyPayload(t *testing.T) {
	svc := space.NewService(&mocks.SpaceRepository{}, &mocks.SettingRepository{}, testLogger())
	_, err := svc.ResolveTag(context.Background(), "")
	require.ErrorIs(t, err, space.ErrTagNotFound)
}

func TestResolveTag_FirstMatchWins(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SpaceRepository{}
	settings := &mocks.SettingRepository{}

	// Two spaces share a tag; the repository returns the first in stored
	// order and the service adopts that answer as-is.
	repo.On("FindByTag", ctx, "TAG-SHARED").Return(&space.Space{ID: "s1", Name: "Room A", TagID: "TAG-SHARED"}, nil)

	svc := space.NewService(repo, settings, testLogger())
	sp, err := svc.ResolveTag(ctx, "TAG-SHARED")
	require.NoError(t, err)
	require.Equal(t, "s1", sp.ID)
}
