package usecase

import (
	"errors"

	"peergram/pkg/logger"
	"peergram/services/access/internal/entity"
	"peergram/services/access/internal/repo/persistent"
)

// PermissionResolver answers resource/level authorization questions. It
// fails closed: a missing identity, a deactivated identity or an absent
// grant are all a Deny, never an error the caller has to interpret.
type PermissionResolver interface {
	Authorize(identityID, resourceName string, required entity.AccessLevel) (entity.Decision, error)
}

type permissionResolver struct {
	identityRepo persistent.IdentityRepository
	rbacRepo     persistent.RBACRepository
	logger       *logger.Logger
}

func NewPermissionResolver(
	identityRepo persistent.IdentityRepository,
	rbacRepo persistent.RBACRepository,
	log *logger.Logger,
) PermissionResolver {
	return &permissionResolver{
		identityRepo: identityRepo,
		rbacRepo:     rbacRepo,
		logger:       log,
	}
}

func (r *permissionResolver) Authorize(identityID, resourceName string, required entity.AccessLevel) (entity.Decision, error) {
	identity, err := r.identityRepo.GetByID(identityID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return entity.DecisionDeny, nil
		}
		// Transient store failure: deny and surface the error so the
		// caller can retry; never resolve ambiguity as a grant.
		return entity.DecisionDeny, err
	}

	if !identity.IsActive {
		return entity.DecisionDeny, nil
	}

	grants, err := r.rbacRepo.Resolve(identityID)
	if err != nil {
		return entity.DecisionDeny, err
	}

	for _, grant := range grants {
		if grant.Resource == resourceName {
			if grant.Level.Satisfies(required) {
				return entity.DecisionAllow, nil
			}
			return entity.DecisionDeny, nil
		}
	}

	// No grant for the resource: implicit deny.
	return entity.DecisionDeny, nil
}
