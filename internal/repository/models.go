package repository

import "time"

type userModel struct {
	ID               int64      `gorm:"column:id;primaryKey"`
	FirstName        string     `gorm:"column:first_name;size:100;not null"`
	LastName         string     `gorm:"column:last_name;size:100;not null"`
	Email            string     `gorm:"column:email;size:191;not null;uniqueIndex"`
	Phone            *string    `gorm:"column:phone;size:30"`
	PasswordHash     string     `gorm:"column:password_hash;size:255;not null"`
	Role             string     `gorm:"column:role;size:16;not null;index"`
	IsActive         bool       `gorm:"column:is_active;not null"`
	ResetToken       *string    `gorm:"column:reset_token;size:64;index"`
	ResetTokenExpiry *time.Time `gorm:"column:reset_token_expiry"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type projectModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	OwnerUserID int64      `gorm:"column:owner_user_id;not null;index"`
	ProjectType string     `gorm:"column:project_type;size:16;not null;index"`
	ClientName  string     `gorm:"column:client_name;size:255"`
	ProjectName string     `gorm:"column:project_name;size:255"`
	City        string     `gorm:"column:city;size:120"`
	Contact     string     `gorm:"column:contact;size:255"`
	Responsible string     `gorm:"column:responsible;size:255"`
	CreatedAt   time.Time  `gorm:"column:created_at;index"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	Owner       *userModel `gorm:"foreignKey:OwnerUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (projectModel) TableName() string { return "projects" }

type spaceModel struct {
	ID        int64         `gorm:"column:id;primaryKey"`
	ProjectID int64         `gorm:"column:project_id;not null;index"`
	Name      string        `gorm:"column:name;size:255;not null"`
	CreatedAt time.Time     `gorm:"column:created_at"`
	UpdatedAt time.Time     `gorm:"column:updated_at"`
	Project   *projectModel `gorm:"foreignKey:ProjectID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (spaceModel) TableName() string { return "spaces" }

type curtainDetailModel struct {
	ID               int64       `gorm:"column:id;primaryKey"`
	SpaceID          int64       `gorm:"column:space_id;not null;index"`
	Width            *float64    `gorm:"column:width"`
	Height           *float64    `gorm:"column:height"`
	RailType         string      `gorm:"column:rail_type;size:100"`
	CurtainType      string      `gorm:"column:curtain_type;size:100"`
	OpeningType      string      `gorm:"column:opening_type;size:100"`
	ConstructionType string      `gorm:"column:construction_type;size:100"`
	FullnessRatio    *float64    `gorm:"column:fullness_ratio"`
	FloorFinish      string      `gorm:"column:floor_finish;size:100"`
	FabricReference  string      `gorm:"column:fabric_reference;size:255"`
	Hem              *float64    `gorm:"column:hem"`
	ClientNote       string      `gorm:"column:client_note;type:text"`
	Space            *spaceModel `gorm:"foreignKey:SpaceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (curtainDetailModel) TableName() string { return "curtain_details" }

type wallpaperDetailModel struct {
	ID            int64       `gorm:"column:id;primaryKey"`
	SpaceID       int64       `gorm:"column:space_id;not null;index"`
	Width         *float64    `gorm:"column:width"`
	Height        *float64    `gorm:"column:height"`
	ProductType   string      `gorm:"column:product_type;size:100"`
	WallCondition string      `gorm:"column:wall_condition;size:255"`
	Space         *spaceModel `gorm:"foreignKey:SpaceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (wallpaperDetailModel) TableName() string { return "wallpaper_details" }

// Models lists every table for AutoMigrate, parents before children.
func Models() []any {
	return []any{
		&userModel{},
		&projectModel{},
		&spaceModel{},
		&curtainDetailModel{},
		&wallpaperDetailModel{},
	}
}
