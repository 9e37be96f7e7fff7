package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccessLevel string

const (
	LevelNone  AccessLevel = "NONE"
	LevelView  AccessLevel = "VIEW"
	LevelWrite AccessLevel = "WRITE"
	LevelFull  AccessLevel = "FULL"
)

type Resource struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Resource) TableName() string {
	return "resources"
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type Permission struct {
	ID         string      `gorm:"type:uuid;primary_key" json:"id"`
	ResourceID string      `gorm:"type:uuid;not null;uniqueIndex:idx_resource_level" json:"resource_id"`
	Level      AccessLevel `gorm:"type:varchar(10);not null;uniqueIndex:idx_resource_level" json:"level"`
	Resource   Resource    `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

func (Permission) TableName() string {
	return "permissions"
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type Role struct {
	ID          string       `gorm:"type:uuid;primary_key" json:"id"`
	Name        string       `gorm:"uniqueIndex;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Role) TableName() string {
	return "roles"
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// RoleAssignment links an identity to a role. The composite unique index
// guarantees an identity cannot hold the same role twice even under
// concurrent assignment.
type RoleAssignment struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	IdentityID string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_identity_role" json:"identity_id"`
	RoleID     string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_identity_role" json:"role_id"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}

func (RoleAssignment) TableName() string {
	return "role_assignments"
}

func (r *RoleAssignment) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
