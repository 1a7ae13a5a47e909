package service

import (
	"context"
	"testing"

	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWishlistServiceTest(t *testing.T) WishlistService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewWishlistService(repository.NewWishlistRepository(testDB))
}

func TestWishlistService_CreateWishlist(t *testing.T) {
	wishlistService := setupWishlistServiceTest(t)
	ctx := context.Background()

	wishlist, err := wishlistService.CreateWishlist(ctx, "alice", "To read", []string{"Dune", " Emma ", "Dune", ""})
	require.NoError(t, err)
	assert.Equal(t, "alice", wishlist.UserID)

	found, err := wishlistService.GetWishlist(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "To read", found.Name)
	assert.Equal(t, []string{"Dune", "Emma"}, found.Titles())
}

func TestWishlistService_CreateWishlist_Errors(t *testing.T) {
	wishlistService := setupWishlistServiceTest(t)
	ctx := context.Background()

	_, err := wishlistService.CreateWishlist(ctx, "", "List", nil)
	assert.ErrorIs(t, err, ErrInvalidWishlist)

	_, err = wishlistService.CreateWishlist(ctx, "alice", " ", nil)
	assert.ErrorIs(t, err, ErrInvalidWishlist)

	_, err = wishlistService.CreateWishlist(ctx, "alice", "List", nil)
	require.NoError(t, err)

	_, err = wishlistService.CreateWishlist(ctx, "alice", "Another", nil)
	assert.ErrorIs(t, err, ErrWishlistAlreadyExists)
}

func TestWishlistService_AddBook(t *testing.T) {
	wishlistService := setupWishlistServiceTest(t)
	ctx := context.Background()

	assert.ErrorIs(t, wishlistService.AddBook(ctx, "alice", "Dune"), ErrWishlistNotFound)

	_, err := wishlistService.CreateWishlist(ctx, "alice", "List", []string{"Dune"})
	require.NoError(t, err)

	require.NoError(t, wishlistService.AddBook(ctx, "alice", "Emma"))
	assert.ErrorIs(t, wishlistService.AddBook(ctx, "alice", "Dune"), ErrBookAlreadyInWishlist)
	assert.ErrorIs(t, wishlistService.AddBook(ctx, "alice", "  "), ErrInvalidWishlist)

	wishlist, err := wishlistService.GetWishlist(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Emma"}, wishlist.Titles())
}

func TestWishlistService_DeleteWishlist(t *testing.T) {
	wishlistService := setupWishlistServiceTest(t)
	ctx := context.Background()

	_, err := wishlistService.CreateWishlist(ctx, "alice", "List", []string{"Dune"})
	require.NoError(t, err)

	require.NoError(t, wishlistService.DeleteWishlist(ctx, "alice"))

	_, err = wishlistService.GetWishlist(ctx, "alice")
	assert.ErrorIs(t, err, ErrWishlistNotFound)
	assert.ErrorIs(t, wishlistService.DeleteWishlist(ctx, "alice"), ErrWishlistNotFound)
}
