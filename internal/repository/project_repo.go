package repository

import (
	"context"
	"fmt"
	"strings"

	"curtaincrm/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const projectOwnerColumn = "owner_user_id"

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type ProjectFilters struct {
	Type domain.ProjectType
	City string
}

func toDomainProject(m projectModel) *domain.Project {
	p := &domain.Project{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		ProjectType: domain.ProjectType(m.ProjectType),
		ClientName:  m.ClientName,
		ProjectName: m.ProjectName,
		City:        m.City,
		Contact:     m.Contact,
		Responsible: m.Responsible,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Owner != nil {
		p.Owner = &domain.UserSummary{
			FirstName: m.Owner.FirstName,
			LastName:  m.Owner.LastName,
			Email:     m.Owner.Email,
		}
	}
	return p
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64, caller domain.Caller) (*domain.Project, error) {
	return findProject(r.db.WithContext(ctx), id, caller)
}

func findProject(db *gorm.DB, id int64, caller domain.Caller) (*domain.Project, error) {
	var m projectModel
	err := db.Preload("Owner").
		Scopes(ownedBy(caller, projectOwnerColumn)).
		Where("id = ?", id).
		Take(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return toDomainProject(m), nil
}

// likeEscaper makes user input match literally inside LIKE ... ESCAPE '!'.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *ProjectRepository) List(ctx context.Context, caller domain.Caller, f ProjectFilters) ([]domain.Project, error) {
	q := r.db.WithContext(ctx).Model(&projectModel{}).
		Preload("Owner").
		Scopes(ownedBy(caller, projectOwnerColumn))
	if f.Type != "" {
		q = q.Where("project_type = ?", string(f.Type))
	}
	if city := strings.TrimSpace(f.City); city != "" {
		q = q.Where("LOWER(city) LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(strings.ToLower(city))+"%")
	}

	var rows []projectModel
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]domain.Project, 0, len(rows))
	for _, m := range rows {
		projects = append(projects, *toDomainProject(m))
	}
	return projects, nil
}

func (r *ProjectRepository) Stats(ctx context.Context, caller domain.Caller) (*domain.ProjectStats, error) {
	var stats domain.ProjectStats
	err := r.db.WithContext(ctx).Model(&projectModel{}).
		Scopes(ownedBy(caller, projectOwnerColumn)).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN project_type = ? THEN 1 ELSE 0 END), 0) AS curtains, "+
				"COALESCE(SUM(CASE WHEN project_type = ? THEN 1 ELSE 0 END), 0) AS wallpapers",
			string(domain.ProjectTypeCurtain), string(domain.ProjectTypeWallpaper),
		).
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	return &stats, nil
}

// Create stores p owned by the caller, whatever OwnerUserID p carries.
func (r *ProjectRepository) Create(ctx context.Context, caller domain.Caller, p *domain.Project) (*domain.Project, error) {
	m := projectModel{
		OwnerUserID: caller.UserID,
		ProjectType: string(p.ProjectType),
		ClientName:  strings.TrimSpace(p.ClientName),
		ProjectName: strings.TrimSpace(p.ProjectName),
		City:        strings.TrimSpace(p.City),
		Contact:     strings.TrimSpace(p.Contact),
		Responsible: strings.TrimSpace(p.Responsible),
	}

	db := r.db.WithContext(ctx)
	if err := db.Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return findProject(db, m.ID, caller)
}

// Update applies patch to a project the caller can see. An empty patch on a
// visible project is ErrNoFields; on any other id it is ErrNotFound.
func (r *ProjectRepository) Update(ctx context.Context, id int64, caller domain.Caller, patch ProjectPatch) (*domain.Project, error) {
	cols := patch.Columns()

	var out *domain.Project
	err := r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var current projectModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(ownedBy(caller, projectOwnerColumn)).
			Where("id = ?", id).
			Take(&current).Error; err != nil {
			return notFound(err)
		}
		if len(cols) == 0 {
			return ErrNoFields
		}

		if patch.ProjectType != nil && string(*patch.ProjectType) != current.ProjectType {
			var spaces int64
			if err := tx.Model(&spaceModel{}).Where("project_id = ?", id).Count(&spaces).Error; err != nil {
				return err
			}
			if spaces > 0 {
				return ErrProjectTypeLocked
			}
		}

		if err := tx.Model(&projectModel{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return fmt.Errorf("update project: %w", err)
		}

		p, err := findProject(tx, id, caller)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64, caller domain.Caller) error {
	return r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var current projectModel
		if err := tx.Select("id").
			Scopes(ownedBy(caller, projectOwnerColumn)).
			Where("id = ?", id).
			Take(&current).Error; err != nil {
			return notFound(err)
		}
		return tx.Delete(&projectModel{}, current.ID).Error
	})
}
