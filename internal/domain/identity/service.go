package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mlenz/tapspace/internal/repository"
)

// Service validates logins against the two credential tables.
type Service struct {
	creds  CredentialRepository
	logger *slog.Logger
}

// NewService creates a new identity service.
func NewService(creds CredentialRepository, logger *slog.Logger) *Service {
	return &Service{creds: creds, logger: logger}
}

// Login checks the moderator table first, then the student table; the first
// match wins. Comparison is plain string equality; there is no lockout and
// every call is independent. A miss in both tables returns ErrBadCredentials
// and no identity.
func (s *Service) Login(ctx context.Context, username, password string) (*Identity, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	for _, role := range []Role{RoleModerator, RoleStudent} {
		cred, err := s.creds.Lookup(ctx, role, username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("looking up credential: %w", err)
		}
		if cred.Password != password {
			continue
		}
		return &Identity{Username: username, Role: role}, nil
	}

	return nil, ErrBadCredentials
}

// Seed replaces the credential tables with the configured fixed set.
func (s *Service) Seed(ctx context.Context, creds []Credential) error {
	if err := s.creds.Seed(ctx, creds); err != nil {
		return fmt.Errorf("seeding credentials: %w", err)
	}
	s.logger.Info("credentials seeded", "count", len(creds))
	return nil
}
