package project

import (
	"context"
	"errors"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/repository"
)

type Service struct {
	projects ProjectRepository
	spaces   SpaceReader
}

func NewService(projects ProjectRepository, spaces SpaceReader) *Service {
	return &Service{projects: projects, spaces: spaces}
}

func (s *Service) Create(ctx context.Context, caller domain.Caller, req CreateProjectRequest) (*domain.Project, error) {
	return s.projects.Create(ctx, caller, &domain.Project{
		ProjectType: req.ProjectType,
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		City:        req.City,
		Contact:     req.Contact,
		Responsible: req.Responsible,
	})
}

func (s *Service) List(ctx context.Context, caller domain.Caller, q ListQuery) ([]domain.Project, error) {
	return s.projects.List(ctx, caller, repository.ProjectFilters{Type: q.ProjectType, City: q.City})
}

func (s *Service) Get(ctx context.Context, caller domain.Caller, id int64) (*ProjectDetail, error) {
	p, err := s.projects.FindByID(ctx, id, caller)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	spaces, err := s.spaces.ListForProject(ctx, id, caller)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return &ProjectDetail{Project: p, Spaces: spaces}, nil
}

func (s *Service) Update(ctx context.Context, caller domain.Caller, id int64, req UpdateProjectRequest) (*domain.Project, error) {
	p, err := s.projects.Update(ctx, id, caller, repository.ProjectPatch{
		ProjectType: req.ProjectType,
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		City:        req.City,
		Contact:     req.Contact,
		Responsible: req.Responsible,
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	return mapRepoErr(s.projects.Delete(ctx, id, caller))
}

func (s *Service) Stats(ctx context.Context, caller domain.Caller) (*domain.ProjectStats, error) {
	return s.projects.Stats(ctx, caller)
}

func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrNoFields):
		return ErrNoFields
	case errors.Is(err, repository.ErrProjectTypeLocked):
		return ErrProjectTypeLocked
	default:
		return err
	}
}
