package persistent

import (
	"fmt"

	"peergram/pkg/models"
	"peergram/services/access/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByOwnerID(ownerID string) (*entity.Profile, error)
	Update(profile *entity.Profile) error
	IncrementViews(profileID string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *entity.Profile) error {
	profileModel := ToProfileModel(profile)
	if profileModel.ID == "" {
		profileModel.ID = uuid.New().String()
	}
	if err := r.db.Create(profileModel).Error; err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	*profile = *ToProfileEntity(profileModel)
	return nil
}

func (r *profileRepository) GetByOwnerID(ownerID string) (*entity.Profile, error) {
	var profileModel models.Profile
	if err := r.db.Where("owner_id = ?", ownerID).First(&profileModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToProfileEntity(&profileModel), nil
}

func (r *profileRepository) Update(profile *entity.Profile) error {
	profileModel := ToProfileModel(profile)
	if err := r.db.Save(profileModel).Error; err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}

// IncrementViews bumps the counter in the store rather than read-modify-write
// in application code. Counts may lag under contention; they never decrement.
func (r *profileRepository) IncrementViews(profileID string) error {
	err := r.db.Model(&models.Profile{}).Where("id = ?", profileID).
		UpdateColumn("profile_views", clause.Expr{SQL: "profile_views + ?", Vars: []interface{}{1}}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}
