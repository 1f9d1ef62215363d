package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"curtaincrm/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SpaceHooks lets callers run extra statements inside the space write
// transaction. Tests use it to inject failures.
type SpaceHooks struct {
	AfterSpaceInsert func(tx *gorm.DB, spaceID int64) error
	// AfterDetailsDelete runs on update once the old details are gone and
	// before the new ones are written.
	AfterDetailsDelete func(tx *gorm.DB, spaceID int64) error
}

type SpaceRepository struct {
	db    *gorm.DB
	hooks SpaceHooks
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

func (r *SpaceRepository) WithHooks(h SpaceHooks) *SpaceRepository {
	cp := *r
	cp.hooks = h
	return &cp
}

// scopedSpace is a space row joined with the type of its parent project.
type scopedSpace struct {
	ID          int64
	ProjectID   int64
	Name        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ProjectType string
}

func (s scopedSpace) model() spaceModel {
	return spaceModel{
		ID:        s.ID,
		ProjectID: s.ProjectID,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (r *SpaceRepository) Create(ctx context.Context, caller domain.Caller, projectID int64, name string, details *domain.SpaceDetails) (*domain.SpaceFull, error) {
	var out *domain.SpaceFull
	err := r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var project projectModel
		if err := tx.Select("id", "project_type").
			Scopes(ownedBy(caller, projectOwnerColumn)).
			Where("id = ?", projectID).
			Take(&project).Error; err != nil {
			return notFound(err)
		}

		space := spaceModel{ProjectID: project.ID, Name: strings.TrimSpace(name)}
		if err := tx.Create(&space).Error; err != nil {
			return fmt.Errorf("insert space: %w", err)
		}

		if r.hooks.AfterSpaceInsert != nil {
			if err := r.hooks.AfterSpaceInsert(tx, space.ID); err != nil {
				return err
			}
		}

		ptype := domain.ProjectType(project.ProjectType)
		if details != nil {
			if err := insertDetails(tx, space.ID, ptype, *details); err != nil {
				return err
			}
		}

		full, err := assembleOne(tx, space, ptype)
		if err != nil {
			return err
		}
		out = full
		return nil
	})
	return out, err
}

func (r *SpaceRepository) GetWithDetails(ctx context.Context, id int64, caller domain.Caller) (*domain.SpaceFull, error) {
	db := r.db.WithContext(ctx)
	row, err := findScopedSpace(db, id, caller, false)
	if err != nil {
		return nil, err
	}
	return assembleOne(db, row.model(), domain.ProjectType(row.ProjectType))
}

func (r *SpaceRepository) ListForProject(ctx context.Context, projectID int64, caller domain.Caller) ([]domain.SpaceFull, error) {
	db := r.db.WithContext(ctx)

	var project projectModel
	if err := db.Select("id", "project_type").
		Scopes(ownedBy(caller, projectOwnerColumn)).
		Where("id = ?", projectID).
		Take(&project).Error; err != nil {
		return nil, notFound(err)
	}

	var spaces []spaceModel
	if err := db.Where("project_id = ?", project.ID).
		Order("created_at ASC").Order("id ASC").
		Find(&spaces).Error; err != nil {
		return nil, fmt.Errorf("list spaces: %w", err)
	}

	types := make(map[int64]domain.ProjectType, len(spaces))
	for _, s := range spaces {
		types[s.ID] = domain.ProjectType(project.ProjectType)
	}
	return assemble(db, spaces, types)
}

func (r *SpaceRepository) Update(ctx context.Context, id int64, caller domain.Caller, patch SpacePatch, details *domain.SpaceDetails) (*domain.SpaceFull, error) {
	var out *domain.SpaceFull
	err := r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		row, err := findScopedSpace(tx, id, caller, true)
		if err != nil {
			return err
		}

		if cols := patch.Columns(); len(cols) > 0 {
			if err := tx.Model(&spaceModel{}).Where("id = ?", id).Updates(cols).Error; err != nil {
				return fmt.Errorf("update space: %w", err)
			}
		}

		ptype := domain.ProjectType(row.ProjectType)
		if details != nil {
			if err := r.replaceDetails(tx, id, ptype, *details); err != nil {
				return err
			}
		}

		var space spaceModel
		if err := tx.Where("id = ?", id).Take(&space).Error; err != nil {
			return notFound(err)
		}
		full, err := assembleOne(tx, space, ptype)
		if err != nil {
			return err
		}
		out = full
		return nil
	})
	return out, err
}

func (r *SpaceRepository) Delete(ctx context.Context, id int64, caller domain.Caller) error {
	return r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		if _, err := findScopedSpace(tx, id, caller, false); err != nil {
			return err
		}
		return tx.Delete(&spaceModel{}, id).Error
	})
}

func findScopedSpace(db *gorm.DB, id int64, caller domain.Caller, lock bool) (*scopedSpace, error) {
	q := db.Table("spaces").
		Select("spaces.id, spaces.project_id, spaces.name, spaces.created_at, spaces.updated_at, projects.project_type").
		Joins("JOIN projects ON projects.id = spaces.project_id").
		Scopes(ownedBy(caller, "projects."+projectOwnerColumn)).
		Where("spaces.id = ?", id)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var row scopedSpace
	if err := q.Take(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

// insertDetails writes only the list that matches the project type; the
// other list is ignored.
func insertDetails(tx *gorm.DB, spaceID int64, ptype domain.ProjectType, d domain.SpaceDetails) error {
	switch ptype {
	case domain.ProjectTypeCurtain:
		if len(d.Curtains) == 0 {
			return nil
		}
		rows := make([]curtainDetailModel, 0, len(d.Curtains))
		for _, c := range d.Curtains {
			rows = append(rows, toCurtainModel(spaceID, c))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert curtain details: %w", err)
		}
	case domain.ProjectTypeWallpaper:
		if len(d.Wallpapers) == 0 {
			return nil
		}
		rows := make([]wallpaperDetailModel, 0, len(d.Wallpapers))
		for _, w := range d.Wallpapers {
			rows = append(rows, toWallpaperModel(spaceID, w))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("insert wallpaper details: %w", err)
		}
	}
	return nil
}

// replaceDetails swaps the detail set of the project's kind when the matching
// list was supplied. A non-nil empty list clears it.
func (r *SpaceRepository) replaceDetails(tx *gorm.DB, spaceID int64, ptype domain.ProjectType, d domain.SpaceDetails) error {
	switch ptype {
	case domain.ProjectTypeCurtain:
		if d.Curtains == nil {
			return nil
		}
		if err := tx.Where("space_id = ?", spaceID).Delete(&curtainDetailModel{}).Error; err != nil {
			return fmt.Errorf("delete curtain details: %w", err)
		}
	case domain.ProjectTypeWallpaper:
		if d.Wallpapers == nil {
			return nil
		}
		if err := tx.Where("space_id = ?", spaceID).Delete(&wallpaperDetailModel{}).Error; err != nil {
			return fmt.Errorf("delete wallpaper details: %w", err)
		}
	default:
		return nil
	}
	if r.hooks.AfterDetailsDelete != nil {
		if err := r.hooks.AfterDetailsDelete(tx, spaceID); err != nil {
			return err
		}
	}
	return insertDetails(tx, spaceID, ptype, d)
}

func assembleOne(db *gorm.DB, space spaceModel, ptype domain.ProjectType) (*domain.SpaceFull, error) {
	list, err := assemble(db, []spaceModel{space}, map[int64]domain.ProjectType{space.ID: ptype})
	if err != nil {
		return nil, err
	}
	return &list[0], nil
}

// assemble attaches detail rows to spaces with one query per detail kind.
func assemble(db *gorm.DB, spaces []spaceModel, types map[int64]domain.ProjectType) ([]domain.SpaceFull, error) {
	out := make([]domain.SpaceFull, 0, len(spaces))
	if len(spaces) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(spaces))
	for _, s := range spaces {
		ids = append(ids, s.ID)
	}

	var curtains []curtainDetailModel
	if err := db.Where("space_id IN ?", ids).Order("id ASC").Find(&curtains).Error; err != nil {
		return nil, fmt.Errorf("load curtain details: %w", err)
	}
	var wallpapers []wallpaperDetailModel
	if err := db.Where("space_id IN ?", ids).Order("id ASC").Find(&wallpapers).Error; err != nil {
		return nil, fmt.Errorf("load wallpaper details: %w", err)
	}

	curtainsBySpace := make(map[int64][]domain.CurtainDetail, len(spaces))
	for _, c := range curtains {
		curtainsBySpace[c.SpaceID] = append(curtainsBySpace[c.SpaceID], toDomainCurtain(c))
	}
	wallpapersBySpace := make(map[int64][]domain.WallpaperDetail, len(spaces))
	for _, w := range wallpapers {
		wallpapersBySpace[w.SpaceID] = append(wallpapersBySpace[w.SpaceID], toDomainWallpaper(w))
	}

	for _, s := range spaces {
		full := domain.SpaceFull{
			Space: domain.Space{
				ID:        s.ID,
				ProjectID: s.ProjectID,
				Name:      s.Name,
				CreatedAt: s.CreatedAt,
				UpdatedAt: s.UpdatedAt,
			},
			ProjectType:      types[s.ID],
			CurtainDetails:   curtainsBySpace[s.ID],
			WallpaperDetails: wallpapersBySpace[s.ID],
		}
		if full.CurtainDetails == nil {
			full.CurtainDetails = []domain.CurtainDetail{}
		}
		if full.WallpaperDetails == nil {
			full.WallpaperDetails = []domain.WallpaperDetail{}
		}
		out = append(out, full)
	}
	return out, nil
}

func toCurtainModel(spaceID int64, c domain.CurtainDetail) curtainDetailModel {
	return curtainDetailModel{
		SpaceID:          spaceID,
		Width:            c.Width,
		Height:           c.Height,
		RailType:         strings.TrimSpace(c.RailType),
		CurtainType:      strings.TrimSpace(c.CurtainType),
		OpeningType:      strings.TrimSpace(c.OpeningType),
		ConstructionType: strings.TrimSpace(c.ConstructionType),
		FullnessRatio:    c.FullnessRatio,
		FloorFinish:      strings.TrimSpace(c.FloorFinish),
		FabricReference:  strings.TrimSpace(c.FabricReference),
		Hem:              c.Hem,
		ClientNote:       c.ClientNote,
	}
}

func toDomainCurtain(m curtainDetailModel) domain.CurtainDetail {
	return domain.CurtainDetail{
		ID:               m.ID,
		SpaceID:          m.SpaceID,
		Width:            m.Width,
		Height:           m.Height,
		RailType:         m.RailType,
		CurtainType:      m.CurtainType,
		OpeningType:      m.OpeningType,
		ConstructionType: m.ConstructionType,
		FullnessRatio:    m.FullnessRatio,
		FloorFinish:      m.FloorFinish,
		FabricReference:  m.FabricReference,
		Hem:              m.Hem,
		ClientNote:       m.ClientNote,
	}
}

func toWallpaperModel(spaceID int64, w domain.WallpaperDetail) wallpaperDetailModel {
	return wallpaperDetailModel{
		SpaceID:       spaceID,
		Width:         w.Width,
		Height:        w.Height,
		ProductType:   strings.TrimSpace(w.ProductType),
		WallCondition: strings.TrimSpace(w.WallCondition),
	}
}

func toDomainWallpaper(m wallpaperDetailModel) domain.WallpaperDetail {
	return domain.WallpaperDetail{
		ID:            m.ID,
		SpaceID:       m.SpaceID,
		Width:         m.Width,
		Height:        m.Height,
		ProductType:   m.ProductType,
		WallCondition: m.WallCondition,
	}
}
