package project

import (
	"context"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/repository"
)

type ProjectRepository interface {
	FindByID(ctx context.Context, id int64, caller domain.Caller) (*domain.Project, error)
	List(ctx context.Context, caller domain.Caller, f repository.ProjectFilters) ([]domain.Project, error)
	Stats(ctx context.Context, caller domain.Caller) (*domain.ProjectStats, error)
	Create(ctx context.Context, caller domain.Caller, p *domain.Project) (*domain.Project, error)
	Update(ctx context.Context, id int64, caller domain.Caller, patch repository.ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id int64, caller domain.Caller) error
}

// SpaceReader loads the spaces shown on the project detail page.
type SpaceReader interface {
	ListForProject(ctx context.Context, projectID int64, caller domain.Caller) ([]domain.SpaceFull, error)
}
