package space

import (
	"context"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/repository"
)

type SpaceRepository interface {
	Create(ctx context.Context, caller domain.Caller, projectID int64, name string, details *domain.SpaceDetails) (*domain.SpaceFull, error)
	GetWithDetails(ctx context.Context, id int64, caller domain.Caller) (*domain.SpaceFull, error)
	ListForProject(ctx context.Context, projectID int64, caller domain.Caller) ([]domain.SpaceFull, error)
	Update(ctx context.Context, id int64, caller domain.Caller, patch repository.SpacePatch, details *domain.SpaceDetails) (*domain.SpaceFull, error)
	Delete(ctx context.Context, id int64, caller domain.Caller) error
}
