package persistent

import (
	"errors"
	"fmt"

	"peergram/pkg/models"
	"peergram/services/access/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GraphRepository persists the follower/following graph. Counts are always
// computed from the edges; nothing is denormalized, so they cannot drift.
type GraphRepository interface {
	AddEdge(followerID, followingID string) error
	RemoveEdge(followerID, followingID string) error
	IsFollowing(followerID, followingID string) (bool, error)
	CountFollowers(identityID string) (int64, error)
	CountFollowing(identityID string) (int64, error)
	RemoveEdgesFor(identityID string) error
}

type graphRepository struct {
	db *gorm.DB
}

func NewGraphRepository(db *gorm.DB) GraphRepository {
	return &graphRepository{db: db}
}

func (r *graphRepository) AddEdge(followerID, followingID string) error {
	if followerID == followingID {
		return entity.ErrSelfFollow
	}

	edge := &models.FollowEdge{
		ID:          uuid.New().String(),
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := r.db.Create(edge).Error; err != nil {
		// The unique pair index arbitrates concurrent inserts; losing a
		// race looks exactly like inserting a duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrDuplicateEdge
		}
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *graphRepository) RemoveEdge(followerID, followingID string) error {
	err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.FollowEdge{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	// Deleting an absent edge is a no-op, not an error.
	return nil
}

func (r *graphRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.FollowEdge{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return count > 0, nil
}

func (r *graphRepository) CountFollowers(identityID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.FollowEdge{}).
		Where("following_id = ?", identityID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return count, nil
}

func (r *graphRepository) CountFollowing(identityID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.FollowEdge{}).
		Where("follower_id = ?", identityID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return count, nil
}

// RemoveEdgesFor deletes every edge touching the identity, in both
// directions. Used when an identity is removed or purged.
func (r *graphRepository) RemoveEdgesFor(identityID string) error {
	err := r.db.Where("follower_id = ? OR following_id = ?", identityID, identityID).
		Delete(&models.FollowEdge{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}
