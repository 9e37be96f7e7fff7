package usecase

import (
	"peergram/pkg/logger"
	"peergram/services/access/internal/entity"
	"peergram/services/access/internal/repo/persistent"
)

// VisibilityResolver decides how much of a profile a viewer gets to see.
// The decision is a function of ownership, the privacy flag and graph
// membership only; RBAC plays no part in profile visibility.
type VisibilityResolver interface {
	ResolveProfileView(viewerID string, owner *entity.Identity, profile *entity.Profile) (*entity.ProfileView, error)
}

type visibilityResolver struct {
	graphRepo   persistent.GraphRepository
	profileRepo persistent.ProfileRepository
	logger      *logger.Logger
}

func NewVisibilityResolver(
	graphRepo persistent.GraphRepository,
	profileRepo persistent.ProfileRepository,
	log *logger.Logger,
) VisibilityResolver {
	return &visibilityResolver{
		graphRepo:   graphRepo,
		profileRepo: profileRepo,
		logger:      log,
	}
}

func (r *visibilityResolver) ResolveProfileView(viewerID string, owner *entity.Identity, profile *entity.Profile) (*entity.ProfileView, error) {
	ownerView := viewerID == owner.ID

	if !ownerView && profile.IsPrivate {
		isFollower, err := r.graphRepo.IsFollowing(viewerID, owner.ID)
		if err != nil {
			// Unresolved graph state must not disclose anything.
			return nil, err
		}
		if !isFollower {
			return entity.RedactedProfileView(), nil
		}
	}

	followersCount, err := r.graphRepo.CountFollowers(owner.ID)
	if err != nil {
		return nil, err
	}
	followingCount, err := r.graphRepo.CountFollowing(owner.ID)
	if err != nil {
		return nil, err
	}

	data := &entity.ProfileData{
		OwnerID:        owner.ID,
		Username:       owner.Username,
		DisplayName:    owner.DisplayName,
		Bio:            profile.Bio,
		Website:        profile.Website,
		AvatarURL:      profile.AvatarURL,
		IsPrivate:      profile.IsPrivate,
		IsVerified:     profile.IsVerified,
		IsProfessional: profile.IsProfessional,
		Links:          profile.Links,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
		ProfileViews:   profile.ProfileViews,
	}

	// Only visits by other identities count as engagement; owners looking
	// at themselves do not inflate their own numbers.
	if !ownerView {
		if err := r.profileRepo.IncrementViews(profile.ID); err != nil {
			r.logger.Warn("Failed to increment profile views for %s: %v", profile.ID, err)
		}
	}

	return entity.FullProfileView(data), nil
}
