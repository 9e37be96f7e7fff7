package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowEdge is a directed follow relationship. The composite unique index
// is the write discipline: concurrent duplicate inserts lose at the store,
// not in application code.
type FollowEdge struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	FollowerID  string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FollowingID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_follow_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (FollowEdge) TableName() string {
	return "follow_edges"
}

func (f *FollowEdge) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
