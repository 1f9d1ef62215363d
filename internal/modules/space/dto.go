package space

import (
	"bytes"
	"encoding/json"

	"curtaincrm/internal/domain"
)

type CreateSpaceRequest struct {
	ProjectID int64           `json:"project_id" binding:"required,min=1"`
	Name      string          `json:"name" binding:"required,max=255"`
	Details   json.RawMessage `json:"details"`
}

type UpdateSpaceRequest struct {
	Name    *string         `json:"name" binding:"omitempty,max=255"`
	Details json.RawMessage `json:"details"`
}

type detailsPayload struct {
	Curtains   []domain.CurtainDetail   `json:"curtains" validate:"dive"`
	Wallpapers []domain.WallpaperDetail `json:"wallpapers" validate:"dive"`
}

// decodeDetails reads the optional details object. Absent, null or
// malformed details decode to nil so the space itself is still written.
func decodeDetails(raw json.RawMessage) *detailsPayload {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var p detailsPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

func (p *detailsPayload) toDomain() *domain.SpaceDetails {
	if p == nil {
		return nil
	}
	return &domain.SpaceDetails{Curtains: p.Curtains, Wallpapers: p.Wallpapers}
}
