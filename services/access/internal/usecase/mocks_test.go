package usecase

import (
	"peergram/services/access/internal/entity"

	"github.com/stretchr/testify/mock"
)

// MockIdentityRepository is a mock implementation of persistent.IdentityRepository
type MockIdentityRepository struct {
	mock.Mock
}

func (m *MockIdentityRepository) Create(identity *entity.Identity) error {
	args := m.Called(identity)
	return args.Error(0)
}

func (m *MockIdentityRepository) GetByID(id string) (*entity.Identity, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}

func (m *MockIdentityRepository) GetByEmail(email string) (*entity.Identity, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}

func (m *MockIdentityRepository) GetByUsername(username string) (*entity.Identity, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Identity), args.Error(1)
}

func (m *MockIdentityRepository) Update(identity *entity.Identity) error {
	args := m.Called(identity)
	return args.Error(0)
}

func (m *MockIdentityRepository) Deactivate(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockProfileRepository is a mock implementation of persistent.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(profile *entity.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByOwnerID(ownerID string) (*entity.Profile, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(profile *entity.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockProfileRepository) IncrementViews(profileID string) error {
	args := m.Called(profileID)
	return args.Error(0)
}

// MockGraphRepository is a mock implementation of persistent.GraphRepository
type MockGraphRepository struct {
	mock.Mock
}

func (m *MockGraphRepository) AddEdge(followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockGraphRepository) RemoveEdge(followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockGraphRepository) IsFollowing(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGraphRepository) CountFollowers(identityID string) (int64, error) {
	args := m.Called(identityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGraphRepository) CountFollowing(identityID string) (int64, error) {
	args := m.Called(identityID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGraphRepository) RemoveEdgesFor(identityID string) error {
	args := m.Called(identityID)
	return args.Error(0)
}

// MockRBACRepository is a mock implementation of persistent.RBACRepository
type MockRBACRepository struct {
	mock.Mock
}

func (m *MockRBACRepository) Resolve(identityID string) ([]entity.Grant, error) {
	args := m.Called(identityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Grant), args.Error(1)
}

func (m *MockRBACRepository) AssignRole(identityID, roleName string) error {
	args := m.Called(identityID, roleName)
	return args.Error(0)
}

func (m *MockRBACRepository) RevokeRole(identityID, roleName string) error {
	args := m.Called(identityID, roleName)
	return args.Error(0)
}

func (m *MockRBACRepository) RevokeAllRoles(identityID string) error {
	args := m.Called(identityID)
	return args.Error(0)
}

func (m *MockRBACRepository) CreateResource(name, description string) (*entity.Resource, error) {
	args := m.Called(name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Resource), args.Error(1)
}

func (m *MockRBACRepository) CreateRole(name, description string) (*entity.Role, error) {
	args := m.Called(name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Role), args.Error(1)
}

func (m *MockRBACRepository) GrantPermission(roleName, resourceName string, level entity.AccessLevel) error {
	args := m.Called(roleName, resourceName, level)
	return args.Error(0)
}

func (m *MockRBACRepository) GetRoleByName(name string) (*entity.Role, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Role), args.Error(1)
}

func (m *MockRBACRepository) ListRoles() ([]*entity.Role, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Role), args.Error(1)
}
