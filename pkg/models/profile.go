package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Profile struct {
	ID             string    `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID        string    `gorm:"type:uuid;uniqueIndex;not null" json:"owner_id"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Website        string    `gorm:"type:varchar(500)" json:"website"`
	AvatarURL      string    `gorm:"type:varchar(500)" json:"avatar_url"`
	IsPrivate      bool      `gorm:"default:false" json:"is_private"`
	IsVerified     bool      `gorm:"default:false" json:"is_verified"`
	IsProfessional bool      `gorm:"default:false" json:"is_professional"`
	Links          []Link    `gorm:"serializer:json" json:"links"`
	ProfileViews   int64     `gorm:"default:0" json:"profile_views"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Link is a labeled URL shown on a profile. Links are stored as a JSON
// column; label and URL are validated before they reach the store.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
