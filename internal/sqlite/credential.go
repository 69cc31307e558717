package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mlenz/tapspace/internal/domain/identity"
	"github.com/mlenz/tapspace/internal/repository"
)

// CredentialRepository implements repository.CredentialRepository for SQLite
type CredentialRepository struct {
	db *DB
}

// NewCredentialRepository creates a new CredentialRepository
func NewCredentialRepository(db *DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// Lookup returns the credential for a username within one role table
func (r *CredentialRepository) Lookup(ctx context.Context, role identity.Role, username string) (*identity.Credential, error) {
	query := `
		SELECT username, password, role
		FROM credentials
		WHERE role = ? AND username = ?
	`

	var cred identity.Credential
	err := r.db.QueryRowContext(ctx, query, role, username).Scan(
		&cred.Username,
		&cred.Password,
		&cred.Role,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up credential: %w", err)
	}

	return &cred, nil
}

// Seed replaces the credential tables with the given fixed set
func (r *CredentialRepository) Seed(ctx context.Context, creds []identity.Credential) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	for _, cred := range creds {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO credentials (username, password, role) VALUES (?, ?, ?)`,
			cred.Username, cred.Password, cred.Role)
		if err != nil {
			return fmt.Errorf("failed to insert credential: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return nil
}
