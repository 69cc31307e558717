package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mlenz/tapspace/internal/domain/attendance"
	"github.com/mlenz/tapspace/internal/repository"
)

// IntervalRepository implements repository.IntervalRepository for SQLite
type IntervalRepository struct {
	db *DB
}

// NewIntervalRepository creates a new IntervalRepository
func NewIntervalRepository(db *DB) *IntervalRepository {
	return &IntervalRepository{db: db}
}

// Create inserts a new interval. A second open interval for the same
// (username, space_name) pair trips the partial unique index and maps to
// repository.ErrConflict.
func (r *IntervalRepository) Create(ctx context.Context, iv *attendance.Interval) error {
	query := `
		INSERT INTO attendance_intervals (
			id, username, space_name, start_time, end_time, task_category
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	var category sql.NullString
	if iv.TaskCategory != nil {
		category = sql.NullString{String: string(*iv.TaskCategory), Valid: true}
	}
	var end sql.NullTime
	if iv.EndTime != nil {
		end = sql.NullTime{Time: *iv.EndTime, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		iv.ID,
		iv.Username,
		iv.SpaceName,
		iv.StartTime,
		end,
		category,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create interval: %w", err)
	}

	return nil
}

// FindOpen returns the most recently started open interval for the pair
func (r *IntervalRepository) FindOpen(ctx context.Context, username, spaceName string) (*attendance.Interval, error) {
	query := `
		SELECT id, username, space_name, start_time, end_time, task_category
		FROM attendance_intervals
		WHERE username = ? AND space_name = ? AND end_time IS NULL
		ORDER BY start_time DESC
		LIMIT 1
	`

	iv, err := scanInterval(r.db.QueryRowContext(ctx, query, username, spaceName))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return iv, nil
}

// SetEnd closes an interval by id
func (r *IntervalRepository) SetEnd(ctx context.Context, id string, end time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE attendance_intervals SET end_time = ? WHERE id = ?`, end, id)
	if err != nil {
		return fmt.Errorf("failed to close interval: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListByUser returns all intervals for a user, oldest first
func (r *IntervalRepository) ListByUser(ctx context.Context, username string) ([]attendance.Interval, error) {
	query := `
		SELECT id, username, space_name, start_time, end_time, task_category
		FROM attendance_intervals
		WHERE username = ?
		ORDER BY start_time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list intervals: %w", err)
	}
	defer rows.Close()

	var intervals []attendance.Interval
	for rows.Next() {
		iv, err := scanInterval(rows)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, *iv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating intervals: %w", err)
	}

	return intervals, nil
}

// DeleteAll empties the interval history
func (r *IntervalRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM attendance_intervals`); err != nil {
		return fmt.Errorf("failed to clear intervals: %w", err)
	}
	return nil
}

func scanInterval(row rowScanner) (*attendance.Interval, error) {
	var iv attendance.Interval
	var end sql.NullTime
	var category sql.NullString

	err := row.Scan(
		&iv.ID,
		&iv.Username,
		&iv.SpaceName,
		&iv.StartTime,
		&end,
		&category,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan interval: %w", err)
	}

	if end.Valid {
		iv.EndTime = &end.Time
	}
	if category.Valid {
		c := attendance.TaskCategory(category.String)
		iv.TaskCategory = &c
	}

	return &iv, nil
}
