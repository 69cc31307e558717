package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/mlenz/tapspace/internal/domain/attendance"
	"github.com/mlenz/tapspace/internal/repository"
	"github.com/stretchr/testify/require"
)

func openInterval(id, username, spaceName string, start time.Time) *attendance.Interval {
	category := attendance.CategoryMath
	return &attendance.Interval{
		ID:           id,
		Username:     username,
		SpaceName:    spaceName,
		StartTime:    start,
		TaskCategory: &category,
	}
}

func TestIntervalRepository_CreateAndFindOpen(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntervalRepository(db)
	ctx := context.Background()

	start := time.Now().Truncate(time.Second)
	require.NoError(t, repo.Create(ctx, openInterval("iv1", "alice", "Room A", start)))

	got, err := repo.FindOpen(ctx, "alice", "Room A")
	require.NoError(t, err)
	require.Equal(t, "iv1", got.ID)
	require.Nil(t, got.EndTime)
	require.NotNil(t, got.TaskCategory)
	require.Equal(t, attendance.CategoryMath, *got.TaskCategory)
	require.True(t, got.StartTime.Equal(start))
}

func TestIntervalRepository_SecondOpenIsConflict(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntervalRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, openInterval("iv1", "alice", "Room A", now)))

	err := repo.Create(ctx, openInterval("iv2", "alice", "Room A", now))
	require.ErrorIs(t, err, repository.ErrConflict)

	// Other pairs are unaffected.
	require.NoError(t, repo.Create(ctx, openInterval("iv3", "bob", "Room A", now)))
	require.NoError(t, repo.Create(ctx, openInterval("iv4", "alice", "Room B", now)))
}

func TestIntervalRepository_FindOpenIgnoresClosedAndOtherPairs(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntervalRepository(db)
	ctx := context.Background()

	start := time.Now().Add(-time.Hour)
	closed := openInterval("iv1", "alice", "Room A", start)
	end := start.Add(30 * time.Minute)
	closed.EndTime = &end
	require.NoError(t, repo.Create(ctx, closed))
	require.NoError(t, repo.Create(ctx, openInterval("iv2", "bob", "Room A", start)))

	_, err := repo.FindOpen(ctx, "alice", "Room A")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIntervalRepository_SetEnd(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntervalRepository(db)
	ctx := context.Background()

	start := time.Now().Add(-10 * time.Minute).Truncate(time.Second)
	require.NoError(t, repo.Create(ctx, openInterval("iv1", "alice", "Room A", start)))

	end := start.Add(10 * time.Minute)
	require.NoError(t, repo.SetEnd(ctx, "iv1", end))

	_, err := repo.FindOpen(ctx, "alice", "Room A")
	require.ErrorIs(t, err, repository.ErrNotFound)

	list, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].EndTime)
	require.True(t, list[0].EndTime.Equal(end))
}

func TestIntervalRepository_SetEndMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntervalRepository(db)

	err := repo.SetEnd(context.Background(), "nope", time.Now())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIntervalRepository_ListByUserOldestFirst(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntervalRepository(db)
	ctx := context.Background()

	base := time.Now().Add(-3 * time.Hour)
	second := openInterval("iv2", "alice", "Room B", base.Add(time.Hour))
	first := openInterval("iv1", "alice", "Room A", base)
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, openInterval("iv3", "bob", "Room A", base)))

	list, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "iv1", list[0].ID)
	require.Equal(t, "iv2", list[1].ID)
}

func TestIntervalRepository_DeleteAll(t *testing.T) {
	db := NewTestDB(t)
	repo := NewIntervalRepository(db)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, repo.Create(ctx, openInterval("iv1", "alice", "Room A", now)))
	require.NoError(t, repo.Create(ctx, openInterval("iv2", "bob", "Room A", now)))

	require.NoError(t, repo.DeleteAll(ctx))

	list, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Empty(t, list)
}
