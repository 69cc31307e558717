package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mlenz/tapspace/internal/domain/space"
	"github.com/mlenz/tapspace/internal/repository"
)

// SpaceRepository implements repository.SpaceRepository for SQLite
type SpaceRepository struct {
	db *DB
}

// NewSpaceRepository creates a new SpaceRepository
func NewSpaceRepository(db *DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

// Create inserts a new space
func (r *SpaceRepository) Create(ctx context.Context, sp *space.Space) error {
	restriction, roster, err := encodeSpaceFields(sp)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO spaces (
			id, name, restriction, icon, assigned_users,
			users_choose_own_restriction, tag_id, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		sp.ID,
		sp.Name,
		restriction,
		sp.Icon,
		roster,
		sp.UsersChooseOwnRestriction,
		nullString(sp.TagID),
		sp.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create space: %w", err)
	}

	return nil
}

// Get retrieves a space by ID
func (r *SpaceRepository) Get(ctx context.Context, id string) (*space.Space, error) {
	query := selectSpace + ` WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// Update overwrites all mutable fields of a space
func (r *SpaceRepository) Update(ctx context.Context, sp *space.Space) error {
	restriction, roster, err := encodeSpaceFields(sp)
	if err != nil {
		return err
	}

	query := `
		UPDATE spaces
		SET name = ?, restriction = ?, icon = ?, assigned_users = ?,
		    users_choose_own_restriction = ?, tag_id = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		sp.Name,
		restriction,
		sp.Icon,
		roster,
		sp.UsersChooseOwnRestriction,
		nullString(sp.TagID),
		sp.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update space: %w", err)
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

// Delete removes a space by ID
func (r *SpaceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete space: %w", err)
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

// List returns all spaces in stored order
func (r *SpaceRepository) List(ctx context.Context) ([]space.Space, error) {
	query := selectSpace + ` ORDER BY created_at ASC, rowid ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}
	defer rows.Close()

	var spaces []space.Space
	for rows.Next() {
		sp, err := scanSpace(rows)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, *sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating spaces: %w", err)
	}

	return spaces, nil
}

// FindByTag returns the first space in stored order carrying the tag.
// The match is exact and case-sensitive.
func (r *SpaceRepository) FindByTag(ctx context.Context, tagID string) (*space.Space, error) {
	query := selectSpace + ` WHERE tag_id = ? ORDER BY created_at ASC, rowid ASC LIMIT 1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, tagID))
}

const selectSpace = `
	SELECT id, name, restriction, icon, assigned_users,
	       users_choose_own_restriction, tag_id, created_at
	FROM spaces`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SpaceRepository) scanOne(row *sql.Row) (*space.Space, error) {
	sp, err := scanSpace(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sp, nil
}

// scanSpace decodes a space row. All defaulting for fields absent from
// older rows happens here, at the single deserialization boundary: a NULL
// restriction decodes to the empty config and the choose-own flag falls
// back to the schema default.
func scanSpace(row rowScanner) (*space.Space, error) {
	var sp space.Space
	var restriction string
	var roster sql.NullString
	var tagID sql.NullString

	err := row.Scan(
		&sp.ID,
		&sp.Name,
		&restriction,
		&sp.Icon,
		&roster,
		&sp.UsersChooseOwnRestriction,
		&tagID,
		&sp.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan space: %w", err)
	}

	if restriction != "" {
		if err := json.Unmarshal([]byte(restriction), &sp.Restriction); err != nil {
			return nil, fmt.Errorf("failed to decode restriction config: %w", err)
		}
	}
	if roster.Valid {
		var users []string
		if err := json.Unmarshal([]byte(roster.String), &users); err != nil {
			return nil, fmt.Errorf("failed to decode roster: %w", err)
		}
		if users == nil {
			users = []string{}
		}
		sp.AssignedUsers = users
	}
	if tagID.Valid {
		sp.TagID = tagID.String
	}

	return &sp, nil
}

func encodeSpaceFields(sp *space.Space) (restriction string, roster sql.NullString, err error) {
	data, err := json.Marshal(sp.Restriction)
	if err != nil {
		return "", sql.NullString{}, fmt.Errorf("failed to encode restriction config: %w", err)
	}
	restriction = string(data)

	if sp.AssignedUsers != nil {
		data, err := json.Marshal(sp.AssignedUsers)
		if err != nil {
			return "", sql.NullString{}, fmt.Errorf("failed to encode roster: %w", err)
		}
		roster = sql.NullString{String: string(data), Valid: true}
	}

	return restriction, roster, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
