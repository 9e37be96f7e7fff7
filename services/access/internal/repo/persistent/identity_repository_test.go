package persistent

import (
	"testing"

	"peergram/services/access/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityRepository_CreateAndGet(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))

	identity := &entity.Identity{
		Email:    "alice@example.com",
		Username: "alice_a",
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, repo.Create(identity))
	assert.NotEmpty(t, identity.ID)

	got, err := repo.GetByID(identity.ID)
	assert.NoError(t, err)
	assert.Equal(t, "alice_a", got.Username)

	got, err = repo.GetByEmail("alice@example.com")
	assert.NoError(t, err)
	assert.Equal(t, identity.ID, got.ID)

	got, err = repo.GetByUsername("alice_a")
	assert.NoError(t, err)
	assert.Equal(t, identity.ID, got.ID)
}

func TestIdentityRepository_GetByID_NotFound(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))

	_, err := repo.GetByID("does-not-exist")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestIdentityRepository_Create_DuplicateUsername(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))

	first := &entity.Identity{Email: "a@example.com", Username: "same_name", Password: "x", IsActive: true}
	require.NoError(t, repo.Create(first))

	second := &entity.Identity{Email: "b@example.com", Username: "same_name", Password: "x", IsActive: true}
	err := repo.Create(second)
	assert.ErrorIs(t, err, entity.ErrDuplicateUsername)
}

func TestIdentityRepository_Deactivate(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))

	identity := &entity.Identity{Email: "bob@example.com", Username: "bob_b", Password: "x", IsActive: true}
	require.NoError(t, repo.Create(identity))

	assert.NoError(t, repo.Deactivate(identity.ID))

	got, err := repo.GetByID(identity.ID)
	assert.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestIdentityRepository_Deactivate_NotFound(t *testing.T) {
	repo := NewIdentityRepository(newTestDB(t))

	err := repo.Deactivate("does-not-exist")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
