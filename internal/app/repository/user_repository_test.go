package repository

import (
	"context"
	"testing"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) UserRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewUserRepository(testDB)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := setupUserTest(t)
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "hash", Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", found.Name)
	assert.Equal(t, "alice@example.com", found.Email)
}

func TestUserRepository_Create_DuplicateUsername(t *testing.T) {
	repo := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", PasswordHash: "hash"}))
	err := repo.Create(ctx, &model.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	repo := setupUserTest(t)

	_, err := repo.FindByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	repo := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", PasswordHash: "hash"}))

	exists, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_Update(t *testing.T) {
	repo := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", PasswordHash: "hash", Name: "Alice"}))

	affected, err := repo.Update(ctx, "alice", map[string]interface{}{"name": "Alice Liddell"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	found, _ := repo.FindByUsername(ctx, "alice")
	assert.Equal(t, "Alice Liddell", found.Name)

	affected, err = repo.Update(ctx, "bob", map[string]interface{}{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestUserRepository_BulkCreate_SkipsExisting(t *testing.T) {
	repo := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "alice", PasswordHash: "hash"}))

	inserted, err := repo.BulkCreate(ctx, []model.User{
		{Username: "alice", PasswordHash: "hash"},
		{Username: "bob", PasswordHash: "hash"},
		{Username: "carol", PasswordHash: "hash"},
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	exists, _ := repo.Exists(ctx, "carol")
	assert.True(t, exists)
}
