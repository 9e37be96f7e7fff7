package http

import (
	"errors"
	"net/http"

	"peergram/services/access/internal/entity"
	"peergram/services/access/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AccessHandler struct {
	accessUseCase usecase.AccessUseCase
}

func NewAccessHandler(accessUseCase usecase.AccessUseCase) *AccessHandler {
	return &AccessHandler{
		accessUseCase: accessUseCase,
	}
}

type CheckRequest struct {
	Resource string `json:"resource" binding:"required"`
	Level    string `json:"level" binding:"required"`
}

type AssignRoleRequest struct {
	IdentityID string `json:"identity_id" binding:"required"`
	Role       string `json:"role" binding:"required"`
}

type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CreateResourceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type GrantPermissionRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Level    string `json:"level" binding:"required"`
}

// storeErr maps a usecase error to a transport status. Anything wrapping
// ErrStoreUnavailable is a 503 so callers can tell outages from denials.
func storeErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInactiveIdentity):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Check godoc
// @Summary      Check a permission
// @Description  Resolve whether the caller may act on a resource at a level
// @Tags         access
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CheckRequest true "Resource and required level"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /access/check [post]
func (h *AccessHandler) Check(c *gin.Context) {
	identityID := c.GetString("user_id")

	var req CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, err := entity.ParseAccessLevel(req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	decision, err := h.accessUseCase.CanPerform(identityID, req.Resource, level)
	if err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"decision": decision.String(),
		"allowed":  decision.Allowed(),
	})
}

// ViewProfile godoc
// @Summary      View a profile
// @Description  Resolve a profile through the visibility rules; private profiles are redacted for non-followers
// @Tags         access
// @Produce      json
// @Security     BearerAuth
// @Param        owner_id path string true "Profile owner ID"
// @Success      200  {object}  entity.ProfileView
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /profiles/{owner_id} [get]
func (h *AccessHandler) ViewProfile(c *gin.Context) {
	viewerID := c.GetString("user_id")
	ownerID := c.Param("owner_id")

	view, err := h.accessUseCase.ViewProfile(viewerID, ownerID)
	if err != nil {
		storeErr(c, err)
		return
	}

	// A redacted view is still a 200: the profile exists, its details are
	// just withheld.
	c.JSON(http.StatusOK, view)
}

// Follow godoc
// @Summary      Follow an identity
// @Tags         graph
// @Produce      json
// @Security     BearerAuth
// @Param        following_id path string true "Identity to follow"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /follows/{following_id} [post]
func (h *AccessHandler) Follow(c *gin.Context) {
	followerID := c.GetString("user_id")
	followingID := c.Param("following_id")

	if err := h.accessUseCase.Follow(followerID, followingID); err != nil {
		switch {
		case errors.Is(err, entity.ErrSelfFollow):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrDuplicateEdge):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			storeErr(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Followed successfully"})
}

// Unfollow godoc
// @Summary      Unfollow an identity
// @Description  Remove the follow edge; removing an absent edge succeeds
// @Tags         graph
// @Produce      json
// @Security     BearerAuth
// @Param        following_id path string true "Identity to unfollow"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /follows/{following_id} [delete]
func (h *AccessHandler) Unfollow(c *gin.Context) {
	followerID := c.GetString("user_id")
	followingID := c.Param("following_id")

	if err := h.accessUseCase.Unfollow(followerID, followingID); err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed successfully"})
}

// FollowStatus godoc
// @Summary      Check a follow edge
// @Tags         graph
// @Produce      json
// @Security     BearerAuth
// @Param        following_id path string true "Identity being followed"
// @Success      200  {object}  map[string]bool
// @Router       /follows/{following_id}/status [get]
func (h *AccessHandler) FollowStatus(c *gin.Context) {
	followerID := c.GetString("user_id")
	followingID := c.Param("following_id")

	following, err := h.accessUseCase.FollowStatus(followerID, followingID)
	if err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": following})
}

// FollowCounts godoc
// @Summary      Get follower and following counts
// @Tags         graph
// @Produce      json
// @Security     BearerAuth
// @Param        identity_id path string true "Identity ID"
// @Success      200  {object}  map[string]int64
// @Router       /identities/{identity_id}/follow-counts [get]
func (h *AccessHandler) FollowCounts(c *gin.Context) {
	identityID := c.Param("identity_id")

	followers, following, err := h.accessUseCase.FollowCounts(identityID)
	if err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": followers,
		"following": following,
	})
}

// AssignRole godoc
// @Summary      Assign a role to an identity
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AssignRoleRequest true "Identity and role"
// @Success      201  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/roles/assign [post]
func (h *AccessHandler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accessUseCase.AssignRole(req.IdentityID, req.Role); err != nil {
		switch {
		case errors.Is(err, entity.ErrRoleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, entity.ErrDuplicateAssignment):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			storeErr(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Role assigned"})
}

// RevokeRole godoc
// @Summary      Revoke a role from an identity
// @Description  Revoking a role the identity does not hold succeeds
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AssignRoleRequest true "Identity and role"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/roles/revoke [post]
func (h *AccessHandler) RevokeRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accessUseCase.RevokeRole(req.IdentityID, req.Role); err != nil {
		if errors.Is(err, entity.ErrRoleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role revoked"})
}

// ListRoles godoc
// @Summary      List registered roles
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/roles [get]
func (h *AccessHandler) ListRoles(c *gin.Context) {
	roles, err := h.accessUseCase.ListRoles()
	if err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"roles": roles, "count": len(roles)})
}

// CreateRole godoc
// @Summary      Register a role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateRoleRequest true "Role data"
// @Success      201  {object}  entity.Role
// @Router       /admin/roles [post]
func (h *AccessHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := h.accessUseCase.CreateRole(req.Name, req.Description)
	if err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, role)
}

// CreateResource godoc
// @Summary      Register a resource
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateResourceRequest true "Resource data"
// @Success      201  {object}  entity.Resource
// @Router       /admin/resources [post]
func (h *AccessHandler) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resource, err := h.accessUseCase.CreateResource(req.Name, req.Description)
	if err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// GrantPermission godoc
// @Summary      Grant a role a permission on a resource
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body GrantPermissionRequest true "Role, resource and level"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/permissions [post]
func (h *AccessHandler) GrantPermission(c *gin.Context) {
	var req GrantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	level, err := entity.ParseAccessLevel(req.Level)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accessUseCase.GrantPermission(req.Role, req.Resource, level); err != nil {
		if errors.Is(err, entity.ErrRoleNotFound) || errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Permission granted"})
}

// DeactivateIdentity godoc
// @Summary      Deactivate an identity
// @Description  Flip the active flag; roles and edges stay in place
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        identity_id path string true "Identity ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/identities/{identity_id}/deactivate [post]
func (h *AccessHandler) DeactivateIdentity(c *gin.Context) {
	identityID := c.Param("identity_id")

	if err := h.accessUseCase.DeactivateIdentity(identityID); err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Identity deactivated"})
}

// RemoveIdentity godoc
// @Summary      Remove an identity
// @Description  Deactivate the identity and purge its follow edges and role assignments
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        identity_id path string true "Identity ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /admin/identities/{identity_id} [delete]
func (h *AccessHandler) RemoveIdentity(c *gin.Context) {
	identityID := c.Param("identity_id")

	if err := h.accessUseCase.RemoveIdentity(identityID); err != nil {
		storeErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Identity removed"})
}
