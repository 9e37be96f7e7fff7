package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"peergram/services/access/internal/entity"
	"peergram/services/access/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAccessUseCase is a mock implementation of AccessUseCase
type MockAccessUseCase struct {
	mock.Mock
}

func (m *MockAccessUseCase) CanPerform(identityID, resourceName string, required entity.AccessLevel) (entity.Decision, error) {
	args := m.Called(identityID, resourceName, required)
	return args.Get(0).(entity.Decision), args.Error(1)
}

func (m *MockAccessUseCase) ViewProfile(viewerID, ownerID string) (*entity.ProfileView, error) {
	args := m.Called(viewerID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProfileView), args.Error(1)
}

func (m *MockAccessUseCase) Follow(followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockAccessUseCase) Unfollow(followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockAccessUseCase) FollowStatus(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccessUseCase) FollowCounts(identityID string) (int64, int64, error) {
	args := m.Called(identityID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccessUseCase) AssignRole(identityID, roleName string) error {
	args := m.Called(identityID, roleName)
	return args.Error(0)
}

func (m *MockAccessUseCase) RevokeRole(identityID, roleName string) error {
	args := m.Called(identityID, roleName)
	return args.Error(0)
}

func (m *MockAccessUseCase) ListRoles() ([]*entity.Role, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Role), args.Error(1)
}

func (m *MockAccessUseCase) CreateRole(name, description string) (*entity.Role, error) {
	args := m.Called(name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Role), args.Error(1)
}

func (m *MockAccessUseCase) CreateResource(name, description string) (*entity.Resource, error) {
	args := m.Called(name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Resource), args.Error(1)
}

func (m *MockAccessUseCase) GrantPermission(roleName, resourceName string, level entity.AccessLevel) error {
	args := m.Called(roleName, resourceName, level)
	return args.Error(0)
}

func (m *MockAccessUseCase) DeactivateIdentity(identityID string) error {
	args := m.Called(identityID)
	return args.Error(0)
}

func (m *MockAccessUseCase) RemoveIdentity(identityID string) error {
	args := m.Called(identityID)
	return args.Error(0)
}

var _ usecase.AccessUseCase = (*MockAccessUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asViewer(viewerID string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", viewerID)
		handler(c)
	}
}

func TestCheck_Allowed(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/access/check", asViewer("user-1", handler.Check))

	mockUseCase.On("CanPerform", "user-1", "post", entity.LevelWrite).Return(entity.DecisionAllow, nil)

	body, _ := json.Marshal(CheckRequest{Resource: "post", Level: "WRITE"})
	req := httptest.NewRequest(http.MethodPost, "/access/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "allow", resp["decision"])
	assert.Equal(t, true, resp["allowed"])
	mockUseCase.AssertExpectations(t)
}

func TestCheck_Denied(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/access/check", asViewer("user-1", handler.Check))

	mockUseCase.On("CanPerform", "user-1", "moderation", entity.LevelFull).Return(entity.DecisionDeny, nil)

	body, _ := json.Marshal(CheckRequest{Resource: "moderation", Level: "FULL"})
	req := httptest.NewRequest(http.MethodPost, "/access/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// A denial is still a resolved answer, not a transport error
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["allowed"])
}

func TestCheck_UnknownLevel(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/access/check", asViewer("user-1", handler.Check))

	body, _ := json.Marshal(CheckRequest{Resource: "post", Level: "SUPER"})
	req := httptest.NewRequest(http.MethodPost, "/access/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "CanPerform", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheck_StoreUnavailable(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/access/check", asViewer("user-1", handler.Check))

	mockUseCase.On("CanPerform", "user-1", "post", entity.LevelView).
		Return(entity.DecisionDeny, entity.ErrStoreUnavailable)

	body, _ := json.Marshal(CheckRequest{Resource: "post", Level: "VIEW"})
	req := httptest.NewRequest(http.MethodPost, "/access/check", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestViewProfile_Full(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/profiles/:owner_id", asViewer("viewer-1", handler.ViewProfile))

	view := entity.FullProfileView(&entity.ProfileData{
		OwnerID:        "owner-1",
		Username:       "alice_a",
		FollowersCount: 3,
	})
	mockUseCase.On("ViewProfile", "viewer-1", "owner-1").Return(view, nil)

	req := httptest.NewRequest(http.MethodGet, "/profiles/owner-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ProfileView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Redacted)
	assert.Equal(t, "alice_a", resp.Profile.Username)
}

func TestViewProfile_Redacted(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/profiles/:owner_id", asViewer("viewer-1", handler.ViewProfile))

	mockUseCase.On("ViewProfile", "viewer-1", "owner-1").Return(entity.RedactedProfileView(), nil)

	req := httptest.NewRequest(http.MethodGet, "/profiles/owner-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.ProfileView
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Redacted)
	assert.Equal(t, entity.RedactedProfileReason, resp.Reason)
	assert.Nil(t, resp.Profile)
}

func TestViewProfile_NotFound(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/profiles/:owner_id", asViewer("viewer-1", handler.ViewProfile))

	mockUseCase.On("ViewProfile", "viewer-1", "ghost").Return(nil, entity.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/profiles/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollow_Created(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/follows/:following_id", asViewer("user-1", handler.Follow))

	mockUseCase.On("Follow", "user-1", "user-2").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/follows/user-2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestFollow_Self(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/follows/:following_id", asViewer("user-1", handler.Follow))

	mockUseCase.On("Follow", "user-1", "user-1").Return(entity.ErrSelfFollow)

	req := httptest.NewRequest(http.MethodPost, "/follows/user-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollow_Duplicate(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/follows/:following_id", asViewer("user-1", handler.Follow))

	mockUseCase.On("Follow", "user-1", "user-2").Return(entity.ErrDuplicateEdge)

	req := httptest.NewRequest(http.MethodPost, "/follows/user-2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUnfollow_Idempotent(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/follows/:following_id", asViewer("user-1", handler.Unfollow))

	mockUseCase.On("Unfollow", "user-1", "user-2").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/follows/user-2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFollowCounts(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/identities/:identity_id/follow-counts", handler.FollowCounts)

	mockUseCase.On("FollowCounts", "user-2").Return(int64(10), int64(4), nil)

	req := httptest.NewRequest(http.MethodGet, "/identities/user-2/follow-counts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]int64
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(10), resp["followers"])
	assert.Equal(t, int64(4), resp["following"])
}

func TestAssignRole_UnknownRole(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/roles/assign", handler.AssignRole)

	mockUseCase.On("AssignRole", "user-1", "WIZARD").Return(entity.ErrRoleNotFound)

	body, _ := json.Marshal(AssignRoleRequest{IdentityID: "user-1", Role: "WIZARD"})
	req := httptest.NewRequest(http.MethodPost, "/admin/roles/assign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignRole_Duplicate(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/roles/assign", handler.AssignRole)

	mockUseCase.On("AssignRole", "user-1", "MODERATOR").Return(entity.ErrDuplicateAssignment)

	body, _ := json.Marshal(AssignRoleRequest{IdentityID: "user-1", Role: "MODERATOR"})
	req := httptest.NewRequest(http.MethodPost, "/admin/roles/assign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGrantPermission_BadLevel(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/permissions", handler.GrantPermission)

	body, _ := json.Marshal(GrantPermissionRequest{Role: "USER", Resource: "post", Level: "ROOT"})
	req := httptest.NewRequest(http.MethodPost, "/admin/permissions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "GrantPermission", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveIdentity(t *testing.T) {
	mockUseCase := new(MockAccessUseCase)
	handler := NewAccessHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/admin/identities/:identity_id", handler.RemoveIdentity)

	mockUseCase.On("RemoveIdentity", "user-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/admin/identities/user-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
