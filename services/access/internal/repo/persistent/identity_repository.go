package persistent

import (
	"errors"
	"fmt"

	"peergram/pkg/models"
	"peergram/services/access/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdentityRepository interface {
	Create(identity *entity.Identity) error
	GetByID(id string) (*entity.Identity, error)
	GetByEmail(email string) (*entity.Identity, error)
	GetByUsername(username string) (*entity.Identity, error)
	Update(identity *entity.Identity) error
	Deactivate(id string) error
}

type identityRepository struct {
	db *gorm.DB
}

func NewIdentityRepository(db *gorm.DB) IdentityRepository {
	return &identityRepository{db: db}
}

func (r *identityRepository) Create(identity *entity.Identity) error {
	identityModel := ToIdentityModel(identity)
	if identityModel.ID == "" {
		identityModel.ID = uuid.New().String()
	}
	if err := r.db.Create(identityModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrDuplicateUsername
		}
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	*identity = *ToIdentityEntity(identityModel)
	return nil
}

func (r *identityRepository) GetByID(id string) (*entity.Identity, error) {
	var identityModel models.Identity
	if err := r.db.Where("id = ?", id).First(&identityModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToIdentityEntity(&identityModel), nil
}

func (r *identityRepository) GetByEmail(email string) (*entity.Identity, error) {
	var identityModel models.Identity
	if err := r.db.Where("email = ?", email).First(&identityModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToIdentityEntity(&identityModel), nil
}

func (r *identityRepository) GetByUsername(username string) (*entity.Identity, error) {
	var identityModel models.Identity
	if err := r.db.Where("username = ?", username).First(&identityModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToIdentityEntity(&identityModel), nil
}

func (r *identityRepository) Update(identity *entity.Identity) error {
	identityModel := ToIdentityModel(identity)
	if err := r.db.Save(identityModel).Error; err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}

// Deactivate flips the active flag. Identities are never deleted; a
// deactivated identity is denied all actions and invisible as a target.
func (r *identityRepository) Deactivate(id string) error {
	result := r.db.Model(&models.Identity{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
