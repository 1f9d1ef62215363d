package space

import (
	"context"
	"errors"
	"strings"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/repository"
)

type Service struct {
	spaces SpaceRepository
}

func NewService(spaces SpaceRepository) *Service {
	return &Service{spaces: spaces}
}

// Create adds a space to a project the caller can reach. Only the detail list
// matching the project type is stored.
func (s *Service) Create(ctx context.Context, caller domain.Caller, projectID int64, name string, details *domain.SpaceDetails) (*domain.SpaceFull, error) {
	sp, err := s.spaces.Create(ctx, caller, projectID, strings.TrimSpace(name), details)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return sp, nil
}

func (s *Service) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.SpaceFull, error) {
	sp, err := s.spaces.GetWithDetails(ctx, id, caller)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return sp, nil
}

func (s *Service) ListByProject(ctx context.Context, caller domain.Caller, projectID int64) ([]domain.SpaceFull, error) {
	list, err := s.spaces.ListForProject(ctx, projectID, caller)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return list, nil
}

// Update renames the space and, when the list for the project type is
// present, replaces its details with that list.
func (s *Service) Update(ctx context.Context, caller domain.Caller, id int64, name *string, details *domain.SpaceDetails) (*domain.SpaceFull, error) {
	sp, err := s.spaces.Update(ctx, id, caller, repository.SpacePatch{Name: name}, details)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return sp, nil
}

func (s *Service) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	return mapRepoErr(s.spaces.Delete(ctx, id, caller))
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
