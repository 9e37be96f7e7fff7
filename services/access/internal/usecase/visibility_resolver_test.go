package usecase

import (
	"testing"

	"peergram/pkg/logger"
	"peergram/services/access/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testOwner() *entity.Identity {
	return &entity.Identity{ID: "owner-1", Username: "owner_one", IsActive: true}
}

func testProfile(private bool) *entity.Profile {
	return &entity.Profile{
		ID:        "profile-1",
		OwnerID:   "owner-1",
		Bio:       "a bio",
		IsPrivate: private,
	}
}

func TestVisibilityResolver_OwnerAlwaysFull(t *testing.T) {
	graphRepo := new(MockGraphRepository)
	profileRepo := new(MockProfileRepository)
	resolver := NewVisibilityResolver(graphRepo, profileRepo, logger.New())

	graphRepo.On("CountFollowers", "owner-1").Return(int64(2), nil)
	graphRepo.On("CountFollowing", "owner-1").Return(int64(3), nil)

	// Even a private profile is fully visible to its owner
	view, err := resolver.ResolveProfileView("owner-1", testOwner(), testProfile(true))
	assert.NoError(t, err)
	assert.False(t, view.Redacted)
	assert.Equal(t, "a bio", view.Profile.Bio)
	assert.Equal(t, int64(2), view.Profile.FollowersCount)
	assert.Equal(t, int64(3), view.Profile.FollowingCount)

	// Owner views never count as engagement
	profileRepo.AssertNotCalled(t, "IncrementViews", mock.Anything)
	// Ownership short-circuits the graph membership check
	graphRepo.AssertNotCalled(t, "IsFollowing", mock.Anything, mock.Anything)
}

func TestVisibilityResolver_PublicProfile(t *testing.T) {
	graphRepo := new(MockGraphRepository)
	profileRepo := new(MockProfileRepository)
	resolver := NewVisibilityResolver(graphRepo, profileRepo, logger.New())

	graphRepo.On("CountFollowers", "owner-1").Return(int64(0), nil)
	graphRepo.On("CountFollowing", "owner-1").Return(int64(0), nil)
	profileRepo.On("IncrementViews", "profile-1").Return(nil)

	view, err := resolver.ResolveProfileView("viewer-1", testOwner(), testProfile(false))
	assert.NoError(t, err)
	assert.False(t, view.Redacted)
	assert.Equal(t, "owner_one", view.Profile.Username)

	profileRepo.AssertNumberOfCalls(t, "IncrementViews", 1)
}

func TestVisibilityResolver_PrivateProfile_NonFollower(t *testing.T) {
	graphRepo := new(MockGraphRepository)
	profileRepo := new(MockProfileRepository)
	resolver := NewVisibilityResolver(graphRepo, profileRepo, logger.New())

	graphRepo.On("IsFollowing", "viewer-1", "owner-1").Return(false, nil)

	view, err := resolver.ResolveProfileView("viewer-1", testOwner(), testProfile(true))
	assert.NoError(t, err)
	assert.True(t, view.Redacted)
	assert.Equal(t, entity.RedactedProfileReason, view.Reason)
	// A redacted view leaks nothing beyond the reason
	assert.Nil(t, view.Profile)

	profileRepo.AssertNotCalled(t, "IncrementViews", mock.Anything)
}

func TestVisibilityResolver_PrivateProfile_Follower(t *testing.T) {
	graphRepo := new(MockGraphRepository)
	profileRepo := new(MockProfileRepository)
	resolver := NewVisibilityResolver(graphRepo, profileRepo, logger.New())

	graphRepo.On("IsFollowing", "viewer-1", "owner-1").Return(true, nil)
	graphRepo.On("CountFollowers", "owner-1").Return(int64(1), nil)
	graphRepo.On("CountFollowing", "owner-1").Return(int64(0), nil)
	profileRepo.On("IncrementViews", "profile-1").Return(nil)

	view, err := resolver.ResolveProfileView("viewer-1", testOwner(), testProfile(true))
	assert.NoError(t, err)
	assert.False(t, view.Redacted)
	assert.Equal(t, "a bio", view.Profile.Bio)

	profileRepo.AssertNumberOfCalls(t, "IncrementViews", 1)
}

func TestVisibilityResolver_GraphStoreUnavailable(t *testing.T) {
	graphRepo := new(MockGraphRepository)
	profileRepo := new(MockProfileRepository)
	resolver := NewVisibilityResolver(graphRepo, profileRepo, logger.New())

	graphRepo.On("IsFollowing", "viewer-1", "owner-1").Return(false, entity.ErrStoreUnavailable)

	// Unresolved graph state discloses nothing, redacted or otherwise
	view, err := resolver.ResolveProfileView("viewer-1", testOwner(), testProfile(true))
	assert.ErrorIs(t, err, entity.ErrStoreUnavailable)
	assert.Nil(t, view)
}

func TestVisibilityResolver_ViewCounter_MixedSequence(t *testing.T) {
	graphRepo := new(MockGraphRepository)
	profileRepo := new(MockProfileRepository)
	resolver := NewVisibilityResolver(graphRepo, profileRepo, logger.New())

	graphRepo.On("IsFollowing", "stranger-1", "owner-1").Return(false, nil)
	graphRepo.On("IsFollowing", "follower-1", "owner-1").Return(true, nil)
	graphRepo.On("CountFollowers", "owner-1").Return(int64(1), nil)
	graphRepo.On("CountFollowing", "owner-1").Return(int64(0), nil)

	increments := 0
	profileRepo.On("IncrementViews", "profile-1").Run(func(args mock.Arguments) {
		increments++
	}).Return(nil)

	owner := testOwner()
	profile := testProfile(true)

	// 2 owner views, 2 denied private views, 1 authorized follower view
	viewers := []string{"owner-1", "stranger-1", "owner-1", "stranger-1", "follower-1"}
	for _, viewer := range viewers {
		_, err := resolver.ResolveProfileView(viewer, owner, profile)
		assert.NoError(t, err)
	}

	// Only the follower's full disclosure counted
	assert.Equal(t, 1, increments)
}
