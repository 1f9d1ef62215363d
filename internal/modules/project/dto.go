package project

import "curtaincrm/internal/domain"

type CreateProjectRequest struct {
	ProjectType domain.ProjectType `json:"project_type" binding:"required,oneof=CURTAIN WALLPAPER"`
	ClientName  string             `json:"client_name" binding:"max=255"`
	ProjectName string             `json:"project_name" binding:"max=255"`
	City        string             `json:"city" binding:"max=100"`
	Contact     string             `json:"contact" binding:"max=255"`
	Responsible string             `json:"responsible" binding:"max=255"`
}

type UpdateProjectRequest struct {
	ProjectType *domain.ProjectType `json:"project_type" binding:"omitempty,oneof=CURTAIN WALLPAPER"`
	ClientName  *string             `json:"client_name" binding:"omitempty,max=255"`
	ProjectName *string             `json:"project_name" binding:"omitempty,max=255"`
	City        *string             `json:"city" binding:"omitempty,max=100"`
	Contact     *string             `json:"contact" binding:"omitempty,max=255"`
	Responsible *string             `json:"responsible" binding:"omitempty,max=255"`
}

type ListQuery struct {
	ProjectType domain.ProjectType `form:"project_type" binding:"omitempty,oneof=CURTAIN WALLPAPER"`
	City        string             `form:"city" binding:"max=100"`
}

// ProjectDetail is a project together with its spaces.
type ProjectDetail struct {
	*domain.Project
	Spaces []domain.SpaceFull `json:"spaces"`
}
