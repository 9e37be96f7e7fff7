package usecase

import (
	"errors"

	"peergram/pkg/logger"
	"peergram/pkg/queue"
	"peergram/services/access/internal/entity"
	"peergram/services/access/internal/repo/persistent"
)

// AccessUseCase is the single entry point the HTTP layer talks to for
// authorization, visibility and graph/role mutations. Store handles never
// leak past it, so every decision goes through the resolvers.
type AccessUseCase interface {
	CanPerform(identityID, resourceName string, required entity.AccessLevel) (entity.Decision, error)
	ViewProfile(viewerID, ownerID string) (*entity.ProfileView, error)

	Follow(followerID, followingID string) error
	Unfollow(followerID, followingID string) error
	FollowStatus(followerID, followingID string) (bool, error)
	FollowCounts(identityID string) (followers, following int64, err error)

	AssignRole(identityID, roleName string) error
	RevokeRole(identityID, roleName string) error
	ListRoles() ([]*entity.Role, error)
	CreateRole(name, description string) (*entity.Role, error)
	CreateResource(name, description string) (*entity.Resource, error)
	GrantPermission(roleName, resourceName string, level entity.AccessLevel) error

	DeactivateIdentity(identityID string) error
	RemoveIdentity(identityID string) error
}

type accessUseCase struct {
	identityRepo persistent.IdentityRepository
	profileRepo  persistent.ProfileRepository
	graphRepo    persistent.GraphRepository
	rbacRepo     persistent.RBACRepository
	permissions  PermissionResolver
	visibility   VisibilityResolver
	queueClient  *queue.Client
	logger       *logger.Logger
}

func NewAccessUseCase(
	identityRepo persistent.IdentityRepository,
	profileRepo persistent.ProfileRepository,
	graphRepo persistent.GraphRepository,
	rbacRepo persistent.RBACRepository,
	permissions PermissionResolver,
	visibility VisibilityResolver,
	queueClient *queue.Client,
	log *logger.Logger,
) AccessUseCase {
	return &accessUseCase{
		identityRepo: identityRepo,
		profileRepo:  profileRepo,
		graphRepo:    graphRepo,
		rbacRepo:     rbacRepo,
		permissions:  permissions,
		visibility:   visibility,
		queueClient:  queueClient,
		logger:       log,
	}
}

// CanPerform runs the two-tier check: the admin capability flag first, the
// RBAC table second. The admin flag is orthogonal to resource permissions
// and never folded into the resolution algorithm.
func (uc *accessUseCase) CanPerform(identityID, resourceName string, required entity.AccessLevel) (entity.Decision, error) {
	identity, err := uc.identityRepo.GetByID(identityID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.DecisionDeny, nil
		}
		return entity.DecisionDeny, err
	}

	if !identity.IsActive {
		return entity.DecisionDeny, nil
	}

	if identity.IsAdmin {
		return entity.DecisionAllow, nil
	}

	return uc.permissions.Authorize(identityID, resourceName, required)
}

func (uc *accessUseCase) ViewProfile(viewerID, ownerID string) (*entity.ProfileView, error) {
	viewer, err := uc.identityRepo.GetByID(viewerID)
	if err != nil {
		return nil, err
	}
	if !viewer.IsActive {
		return nil, entity.ErrInactiveIdentity
	}

	owner, err := uc.identityRepo.GetByID(ownerID)
	if err != nil {
		return nil, err
	}
	if !owner.IsActive {
		// Deactivated identities are invisible as targets.
		return nil, entity.ErrNotFound
	}

	profile, err := uc.profileRepo.GetByOwnerID(ownerID)
	if err != nil {
		return nil, err
	}

	return uc.visibility.ResolveProfileView(viewerID, owner, profile)
}

func (uc *accessUseCase) Follow(followerID, followingID string) error {
	follower, err := uc.identityRepo.GetByID(followerID)
	if err != nil {
		return err
	}
	if !follower.IsActive {
		return entity.ErrInactiveIdentity
	}

	target, err := uc.identityRepo.GetByID(followingID)
	if err != nil {
		return err
	}
	if !target.IsActive {
		return entity.ErrNotFound
	}

	if err := uc.graphRepo.AddEdge(followerID, followingID); err != nil {
		return err
	}

	uc.publishEvent(queue.RoutingKeyFollowCreated, map[string]interface{}{
		"follower_id":  followerID,
		"following_id": followingID,
	})
	return nil
}

func (uc *accessUseCase) Unfollow(followerID, followingID string) error {
	follower, err := uc.identityRepo.GetByID(followerID)
	if err != nil {
		return err
	}
	if !follower.IsActive {
		return entity.ErrInactiveIdentity
	}

	if err := uc.graphRepo.RemoveEdge(followerID, followingID); err != nil {
		return err
	}

	uc.publishEvent(queue.RoutingKeyFollowRemoved, map[string]interface{}{
		"follower_id":  followerID,
		"following_id": followingID,
	})
	return nil
}

func (uc *accessUseCase) FollowStatus(followerID, followingID string) (bool, error) {
	return uc.graphRepo.IsFollowing(followerID, followingID)
}

func (uc *accessUseCase) FollowCounts(identityID string) (int64, int64, error) {
	followers, err := uc.graphRepo.CountFollowers(identityID)
	if err != nil {
		return 0, 0, err
	}
	following, err := uc.graphRepo.CountFollowing(identityID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}

func (uc *accessUseCase) AssignRole(identityID, roleName string) error {
	if _, err := uc.identityRepo.GetByID(identityID); err != nil {
		return err
	}

	if err := uc.rbacRepo.AssignRole(identityID, roleName); err != nil {
		return err
	}

	uc.publishEvent(queue.RoutingKeyRoleAssigned, map[string]interface{}{
		"identity_id": identityID,
		"role":        roleName,
	})
	return nil
}

func (uc *accessUseCase) RevokeRole(identityID, roleName string) error {
	if err := uc.rbacRepo.RevokeRole(identityID, roleName); err != nil {
		return err
	}

	uc.publishEvent(queue.RoutingKeyRoleRevoked, map[string]interface{}{
		"identity_id": identityID,
		"role":        roleName,
	})
	return nil
}

func (uc *accessUseCase) ListRoles() ([]*entity.Role, error) {
	return uc.rbacRepo.ListRoles()
}

func (uc *accessUseCase) CreateRole(name, description string) (*entity.Role, error) {
	return uc.rbacRepo.CreateRole(name, description)
}

func (uc *accessUseCase) CreateResource(name, description string) (*entity.Resource, error) {
	return uc.rbacRepo.CreateResource(name, description)
}

func (uc *accessUseCase) GrantPermission(roleName, resourceName string, level entity.AccessLevel) error {
	return uc.rbacRepo.GrantPermission(roleName, resourceName, level)
}

// DeactivateIdentity flips the active flag. Roles and edges stay in place;
// the resolvers deny everything for an inactive identity, so nothing else
// needs to change for the deactivation to take effect.
func (uc *accessUseCase) DeactivateIdentity(identityID string) error {
	if err := uc.identityRepo.Deactivate(identityID); err != nil {
		return err
	}

	uc.publishEvent(queue.RoutingKeyIdentityDeactivated, map[string]interface{}{
		"identity_id": identityID,
	})
	return nil
}

// RemoveIdentity is the cascade variant: the identity is deactivated and
// every follow edge and role assignment touching it is destroyed. The
// identity row itself is kept; identities are never deleted.
func (uc *accessUseCase) RemoveIdentity(identityID string) error {
	if err := uc.identityRepo.Deactivate(identityID); err != nil {
		return err
	}
	if err := uc.graphRepo.RemoveEdgesFor(identityID); err != nil {
		return err
	}
	if err := uc.rbacRepo.RevokeAllRoles(identityID); err != nil {
		return err
	}

	uc.publishEvent(queue.RoutingKeyIdentityDeactivated, map[string]interface{}{
		"identity_id": identityID,
		"purged":      true,
	})
	return nil
}

// publishEvent is fire-and-forget: the queue is optional at boot and a
// publish failure must not fail the mutation that already committed.
func (uc *accessUseCase) publishEvent(routingKey string, event map[string]interface{}) {
	if uc.queueClient == nil {
		return
	}
	if err := uc.queueClient.PublishAccessEvent(routingKey, event); err != nil {
		uc.logger.Warn("Failed to publish %s event: %v", routingKey, err)
	}
}
