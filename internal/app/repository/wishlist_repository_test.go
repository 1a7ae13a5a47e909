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

func setupWishlistTest(t *testing.T) WishlistRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewWishlistRepository(testDB)
}

func TestWishlistRepository_CreateWithBooks(t *testing.T) {
	repo := setupWishlistTest(t)
	ctx := context.Background()

	wishlist := &model.Wishlist{
		UserID: "alice",
		Name:   "Summer reading",
		Books:  []model.WishlistBook{{BookTitle: "Dune"}, {BookTitle: "Emma"}},
	}
	require.NoError(t, repo.Create(ctx, wishlist))

	found, err := repo.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Summer reading", found.Name)
	assert.Equal(t, []string{"Dune", "Emma"}, found.Titles())
}

func TestWishlistRepository_Create_Duplicate(t *testing.T) {
	repo := setupWishlistTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Wishlist{UserID: "alice", Name: "A"}))
	err := repo.Create(ctx, &model.Wishlist{UserID: "alice", Name: "B"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestWishlistRepository_AddBook(t *testing.T) {
	repo := setupWishlistTest(t)
	ctx := context.Background()

	wishlist := &model.Wishlist{UserID: "alice", Name: "A"}
	require.NoError(t, repo.Create(ctx, wishlist))

	require.NoError(t, repo.AddBook(ctx, wishlist.ID, "Dune"))
	err := repo.AddBook(ctx, wishlist.ID, "Dune")
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	found, _ := repo.FindByUserID(ctx, "alice")
	assert.Equal(t, []string{"Dune"}, found.Titles())
}

func TestWishlistRepository_DeleteByUserID(t *testing.T) {
	repo := setupWishlistTest(t)
	ctx := context.Background()

	wishlist := &model.Wishlist{UserID: "alice", Name: "A", Books: []model.WishlistBook{{BookTitle: "Dune"}}}
	require.NoError(t, repo.Create(ctx, wishlist))

	affected, err := repo.DeleteByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	_, err = repo.FindByUserID(ctx, "alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	affected, err = repo.DeleteByUserID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
