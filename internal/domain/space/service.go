package space

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mlenz/tapspace/internal/repository"
)

const currentSpaceKey = "current_space_id"

// Service is the space registry: CRUD over space profiles, the current
// selection, and tag-to-space resolution.
type Service struct {
	repo     Repository
	settings SettingRepository
	logger   *slog.Logger
}

// NewService creates a new space registry service.
func NewService(repo Repository, settings SettingRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, settings: settings, logger: logger}
}

// CreateRequest defines space creation inputs.
type CreateRequest struct {
	Name                      string            `json:"name"`
	Restriction               RestrictionConfig `json:"restriction"`
	Icon                      string            `json:"icon"`
	AssignedUsers             []string          `json:"assigned_users"`
	UsersChooseOwnRestriction bool              `json:"users_choose_own_restriction"`
	TagID                     string            `json:"tag_id"`
}

// Add creates a space and makes it the current selection.
func (s *Service) Add(ctx context.Context, req CreateRequest) (*Space, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	sp := &Space{
		ID:                        uuid.NewString(),
		Name:                      req.Name,
		Restriction:               req.Restriction,
		Icon:                      req.Icon,
		AssignedUsers:             req.AssignedUsers,
		UsersChooseOwnRestriction: req.UsersChooseOwnRestriction,
		TagID:                     req.TagID,
		CreatedAt:                 time.Now(),
	}

	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, fmt.Errorf("creating space: %w", err)
	}
	if err := s.settings.Set(ctx, currentSpaceKey, sp.ID); err != nil {
		return nil, fmt.Errorf("selecting new space: %w", err)
	}

	return sp, nil
}

// Get fetches a space by id.
func (s *Service) Get(ctx context.Context, id string) (*Space, error) {
	sp, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("getting space: %w", err)
	}
	return sp, nil
}

// Update applies a sparse patch: only fields present in the request change,
// everything else is left untouched. Updating the current space refreshes
// the selection.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Space, error) {
	sp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrInvalidInput
		}
		sp.Name = *req.Name
	}
	if req.Restriction != nil {
		sp.Restriction = *req.Restriction
	}
	if req.Icon != nil {
		sp.Icon = *req.Icon
	}
	if req.AssignedUsers != nil {
		sp.AssignedUsers = *req.AssignedUsers
	}
	if req.UsersChooseOwnRestriction != nil {
		sp.UsersChooseOwnRestriction = *req.UsersChooseOwnRestriction
	}
	if req.TagID != nil {
		sp.TagID = *req.TagID
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, fmt.Errorf("updating space: %w", err)
	}

	currentID, err := s.settings.Get(ctx, currentSpaceKey)
	if err == nil && currentID == id {
		if err := s.settings.Set(ctx, currentSpaceKey, id); err != nil {
			return nil, fmt.Errorf("refreshing selection: %w", err)
		}
	}

	return sp, nil
}

// Delete removes a space. If the deleted space was current, the selection
// falls back to the first remaining space, or is cleared if none remain.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSpaceNotFound
		}
		return fmt.Errorf("deleting space: %w", err)
	}

	currentID, err := s.settings.Get(ctx, currentSpaceKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("reading selection: %w", err)
	}
	if currentID != id {
		return nil
	}

	remaining, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing spaces: %w", err)
	}
	if len(remaining) == 0 {
		if err := s.settings.Delete(ctx, currentSpaceKey); err != nil {
			return fmt.Errorf("clearing selection: %w", err)
		}
		return nil
	}
	if err := s.settings.Set(ctx, currentSpaceKey, remaining[0].ID); err != nil {
		return fmt.Errorf("reassigning selection: %w", err)
	}
	return nil
}

// List returns all spaces in stored order.
func (s *Service) List(ctx context.Context) ([]Space, error) {
	return s.repo.List(ctx)
}

// Current returns the currently selected space.
func (s *Service) Current(ctx context.Context) (*Space, error) {
	id, err := s.settings.Get(ctx, currentSpaceKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("reading selection: %w", err)
	}
	return s.Get(ctx, id)
}

// SetCurrent selects a space by id.
func (s *Service) SetCurrent(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.settings.Set(ctx, currentSpaceKey, id); err != nil {
		return fmt.Errorf("selecting space: %w", err)
	}
	return nil
}

// EnsureDefault guarantees the registry is never empty and that the
// selection points at an existing space. On first run it synthesizes a
// space named "Default" with an empty restriction config. When the
// selection is unset or dangling it prefers a space literally named
// "Default" as tie-break, else the first space.
func (s *Service) EnsureDefault(ctx context.Context) error {
	spaces, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("listing spaces: %w", err)
	}

	if len(spaces) == 0 {
		sp := &Space{
			ID:        uuid.NewString(),
			Name:      DefaultName,
			CreatedAt: time.Now(),
		}
		if err := s.repo.Create(ctx, sp); err != nil {
			return fmt.Errorf("creating default space: %w", err)
		}
		s.logger.Info("synthesized default space", "id", sp.ID)
		spaces = []Space{*sp}
	}

	currentID, err := s.settings.Get(ctx, currentSpaceKey)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("reading selection: %w", err)
	}
	for _, sp := range spaces {
		if sp.ID == currentID {
			return nil
		}
	}

	pick := spaces[0]
	for _, sp := range spaces {
		if sp.Name == DefaultName {
			pick = sp
			break
		}
	}
	if err := s.settings.Set(ctx, currentSpaceKey, pick.ID); err != nil {
		return fmt.Errorf("selecting space: %w", err)
	}
	return nil
}

// ResolveTag maps a scanned tag payload to a space. The match is exact and
// case-sensitive; when two spaces share a tag the first in stored order
// wins. An unmatched payload returns ErrTagNotFound, never a fallback.
func (s *Service) ResolveTag(ctx context.Context, payload string) (*Space, error) {
	if payload == "" {
		return nil, ErrTagNotFound
	}
	sp, err := s.repo.FindByTag(ctx, payload)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("resolving tag: %w", err)
	}
	return sp, nil
}
