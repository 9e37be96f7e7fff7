package persistent

import (
	"errors"
	"fmt"

	"peergram/pkg/models"
	"peergram/services/access/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RBACRepository persists resources, permissions, roles and role
// assignments, and resolves the effective permission set of an identity.
type RBACRepository interface {
	Resolve(identityID string) ([]entity.Grant, error)
	AssignRole(identityID, roleName string) error
	RevokeRole(identityID, roleName string) error
	RevokeAllRoles(identityID string) error

	// Administrative reference-data management.
	CreateResource(name, description string) (*entity.Resource, error)
	CreateRole(name, description string) (*entity.Role, error)
	GrantPermission(roleName, resourceName string, level entity.AccessLevel) error
	GetRoleByName(name string) (*entity.Role, error)
	ListRoles() ([]*entity.Role, error)
}

type rbacRepository struct {
	db *gorm.DB
}

func NewRBACRepository(db *gorm.DB) RBACRepository {
	return &rbacRepository{db: db}
}

type grantRow struct {
	Resource string
	Level    string
}

// Resolve walks identity -> assignments -> roles -> permissions -> resources
// and folds the result per resource, keeping the maximum access level. The
// union-then-max fold is the only privilege composition rule: there are no
// deny overrides, absence of a grant is the deny.
func (r *rbacRepository) Resolve(identityID string) ([]entity.Grant, error) {
	var rows []grantRow
	err := r.db.Table("role_assignments").
		Select("resources.name AS resource, permissions.level AS level").
		Joins("JOIN roles ON roles.id = role_assignments.role_id").
		Joins("JOIN role_permissions ON role_permissions.role_id = roles.id").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Joins("JOIN resources ON resources.id = permissions.resource_id").
		Where("role_assignments.identity_id = ?", identityID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	maxLevels := make(map[string]entity.AccessLevel)
	for _, row := range rows {
		level := entity.AccessLevel(row.Level)
		if current, ok := maxLevels[row.Resource]; ok {
			maxLevels[row.Resource] = current.Max(level)
		} else {
			maxLevels[row.Resource] = level
		}
	}

	grants := make([]entity.Grant, 0, len(maxLevels))
	for resource, level := range maxLevels {
		grants = append(grants, entity.Grant{Resource: resource, Level: level})
	}
	return grants, nil
}

func (r *rbacRepository) AssignRole(identityID, roleName string) error {
	var role models.Role
	if err := r.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ErrRoleNotFound
		}
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	assignment := &models.RoleAssignment{
		ID:         uuid.New().String(),
		IdentityID: identityID,
		RoleID:     role.ID,
	}
	if err := r.db.Create(assignment).Error; err != nil {
		// The unique (identity, role) index decides concurrent assignments:
		// exactly one insert wins, the rest surface as duplicates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrDuplicateAssignment
		}
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *rbacRepository) RevokeRole(identityID, roleName string) error {
	var role models.Role
	if err := r.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ErrRoleNotFound
		}
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	// Revoking a role the identity does not hold is a no-op.
	err := r.db.Where("identity_id = ? AND role_id = ?", identityID, role.ID).
		Delete(&models.RoleAssignment{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}

// RevokeAllRoles drops every assignment held by the identity. Used when an
// identity is deactivated so no stale grants survive.
func (r *rbacRepository) RevokeAllRoles(identityID string) error {
	err := r.db.Where("identity_id = ?", identityID).
		Delete(&models.RoleAssignment{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *rbacRepository) CreateResource(name, description string) (*entity.Resource, error) {
	resource := &models.Resource{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}
	if err := r.db.Create(resource).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			var existing models.Resource
			if err := r.db.Where("name = ?", name).First(&existing).Error; err != nil {
				return nil, translateError(err)
			}
			return ToResourceEntity(&existing), nil
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return ToResourceEntity(resource), nil
}

func (r *rbacRepository) CreateRole(name, description string) (*entity.Role, error) {
	role := &models.Role{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}
	if err := r.db.Create(role).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetRoleByName(name)
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return ToRoleEntity(role), nil
}

// GrantPermission attaches a (resource, level) permission to a role,
// creating the permission row on first use. Both the role and the resource
// must already be registered.
func (r *rbacRepository) GrantPermission(roleName, resourceName string, level entity.AccessLevel) error {
	var role models.Role
	if err := r.db.Where("name = ?", roleName).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.ErrRoleNotFound
		}
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	var resource models.Resource
	if err := r.db.Where("name = ?", resourceName).First(&resource).Error; err != nil {
		return translateError(err)
	}

	permission := models.Permission{
		ResourceID: resource.ID,
		Level:      models.AccessLevel(level),
	}
	err := r.db.Where("resource_id = ? AND level = ?", resource.ID, permission.Level).
		FirstOrCreate(&permission).Error
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	if err := r.db.Model(&role).Association("Permissions").Append(&permission); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *rbacRepository) GetRoleByName(name string) (*entity.Role, error) {
	var role models.Role
	err := r.db.Preload("Permissions.Resource").Where("name = ?", name).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrRoleNotFound
		}
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}
	return ToRoleEntity(&role), nil
}

func (r *rbacRepository) ListRoles() ([]*entity.Role, error) {
	var roleModels []models.Role
	err := r.db.Preload("Permissions.Resource").Order("name").Find(&roleModels).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrStoreUnavailable, err)
	}

	roles := make([]*entity.Role, len(roleModels))
	for i := range roleModels {
		roles[i] = ToRoleEntity(&roleModels[i])
	}
	return roles, nil
}
