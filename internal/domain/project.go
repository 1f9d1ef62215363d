package domain

import "time"

type ProjectType string

const (
	ProjectTypeCurtain   ProjectType = "CURTAIN"
	ProjectTypeWallpaper ProjectType = "WALLPAPER"
)

func (t ProjectType) Valid() bool {
	return t == ProjectTypeCurtain || t == ProjectTypeWallpaper
}

type Project struct {
	ID          int64        `json:"id"`
	OwnerUserID int64        `json:"owner_user_id"`
	ProjectType ProjectType  `json:"project_type"`
	ClientName  string       `json:"client_name"`
	ProjectName string       `json:"project_name"`
	City        string       `json:"city"`
	Contact     string       `json:"contact"`
	Responsible string       `json:"responsible"`
	Owner       *UserSummary `json:"owner,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ProjectStats counts the projects visible to a caller. The JSON names are
// the ones the dashboard front end already reads.
type ProjectStats struct {
	Total      int64 `json:"total"`
	Curtains   int64 `json:"rideaux"`
	Wallpapers int64 `json:"wallpapers"`
}
