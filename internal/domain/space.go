package domain

import "time"

type Space struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"project_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CurtainDetail struct {
	ID               int64    `json:"id,omitempty"`
	SpaceID          int64    `json:"space_id,omitempty"`
	Width            *float64 `json:"width,omitempty" validate:"omitempty,gte=0"`
	Height           *float64 `json:"height,omitempty" validate:"omitempty,gte=0"`
	RailType         string   `json:"rail_type,omitempty" validate:"max=100"`
	CurtainType      string   `json:"curtain_type,omitempty" validate:"max=100"`
	OpeningType      string   `json:"opening_type,omitempty" validate:"max=100"`
	ConstructionType string   `json:"construction_type,omitempty" validate:"max=100"`
	FullnessRatio    *float64 `json:"fullness_ratio,omitempty" validate:"omitempty,gte=0"`
	FloorFinish      string   `json:"floor_finish,omitempty" validate:"max=100"`
	FabricReference  string   `json:"fabric_reference,omitempty" validate:"max=255"`
	Hem              *float64 `json:"hem,omitempty" validate:"omitempty,gte=0"`
	ClientNote       string   `json:"client_note,omitempty"`
}

type WallpaperDetail struct {
	ID            int64    `json:"id,omitempty"`
	SpaceID       int64    `json:"space_id,omitempty"`
	Width         *float64 `json:"width,omitempty" validate:"omitempty,gte=0"`
	Height        *float64 `json:"height,omitempty" validate:"omitempty,gte=0"`
	ProductType   string   `json:"product_type,omitempty" validate:"max=100"`
	WallCondition string   `json:"wall_condition,omitempty" validate:"max=255"`
}

// SpaceDetails carries the detail lists of a create or update request.
// A nil list means "not supplied"; an empty non-nil list on update clears
// the existing rows of that kind.
type SpaceDetails struct {
	Curtains   []CurtainDetail
	Wallpapers []WallpaperDetail
}

// SpaceFull is a space with its detail rows. Both lists are always non-nil
// and at most one of them is non-empty.
type SpaceFull struct {
	Space
	ProjectType      ProjectType       `json:"project_type"`
	CurtainDetails   []CurtainDetail   `json:"curtainDetails"`
	WallpaperDetails []WallpaperDetail `json:"wallpaperDetails"`
}
