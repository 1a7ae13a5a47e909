package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCartTest(t *testing.T) (*db.Database, CartRepository, *model.ShoppingCart) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	repo := NewCartRepository(testDB)

	cart := &model.ShoppingCart{UserID: "alice"}
	require.NoError(t, repo.Create(context.Background(), cart))

	return testDB, repo, cart
}

func TestCartRepository_Create(t *testing.T) {
	_, repo, cart := setupCartTest(t)

	assert.NotZero(t, cart.ID)

	found, err := repo.FindByUserIDWithItems(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)
	assert.NotNil(t, found.Items)
	assert.Empty(t, found.Items)
}

func TestCartRepository_Create_DuplicateUser(t *testing.T) {
	_, repo, _ := setupCartTest(t)

	err := repo.Create(context.Background(), &model.ShoppingCart{UserID: "alice"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestCartRepository_FindByUserID_NotFound(t *testing.T) {
	_, repo, _ := setupCartTest(t)

	_, err := repo.FindByUserID(context.Background(), "bob")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByUserIDWithItems(context.Background(), "bob")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_MergeItem_AppendsNewLines(t *testing.T) {
	_, repo, cart := setupCartTest(t)
	ctx := context.Background()

	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune", Quantity: 2, PricePerItem: 15}))
	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b2", ItemName: "Emma", Quantity: 1, PricePerItem: 9.5}))

	found, err := repo.FindByUserIDWithItems(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "b1", found.Items[0].ItemID)
	assert.Equal(t, "b2", found.Items[1].ItemID)
	assert.Equal(t, 2, found.Items[0].Quantity)
}

func TestCartRepository_MergeItem_IncrementsExistingLine(t *testing.T) {
	_, repo, cart := setupCartTest(t)
	ctx := context.Background()

	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune", Quantity: 2, PricePerItem: 15}))
	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b2", ItemName: "Emma", Quantity: 1, PricePerItem: 9.5}))
	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune (reprint)", Quantity: 3, PricePerItem: 99}))

	found, err := repo.FindByUserIDWithItems(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, found.Items, 2)

	// The line keeps its position and its original name and price.
	assert.Equal(t, "b1", found.Items[0].ItemID)
	assert.Equal(t, 5, found.Items[0].Quantity)
	assert.Equal(t, "Dune", found.Items[0].ItemName)
	assert.Equal(t, 15.0, found.Items[0].PricePerItem)
}

func TestCartRepository_MergeItem_Concurrent(t *testing.T) {
	_, repo, cart := setupCartTest(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune", Quantity: 1, PricePerItem: 15})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	found, err := repo.FindByUserIDWithItems(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, workers, found.Items[0].Quantity)
}

func TestCartRepository_UpdateItemQuantity(t *testing.T) {
	_, repo, cart := setupCartTest(t)
	ctx := context.Background()

	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune", Quantity: 2, PricePerItem: 15}))

	affected, err := repo.UpdateItemQuantity(ctx, cart.ID, "b1", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.UpdateItemQuantity(ctx, cart.ID, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	found, _ := repo.FindByUserIDWithItems(ctx, "alice")
	require.Len(t, found.Items, 1)
	assert.Equal(t, 7, found.Items[0].Quantity)
}

func TestCartRepository_DeleteItem(t *testing.T) {
	_, repo, cart := setupCartTest(t)
	ctx := context.Background()

	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune", Quantity: 2, PricePerItem: 15}))
	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b2", ItemName: "Emma", Quantity: 1, PricePerItem: 9.5}))

	affected, err := repo.DeleteItem(ctx, cart.ID, "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.DeleteItem(ctx, cart.ID, "b1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	found, _ := repo.FindByUserIDWithItems(ctx, "alice")
	require.Len(t, found.Items, 1)
	assert.Equal(t, "b2", found.Items[0].ItemID)
}

func TestCartRepository_Delete(t *testing.T) {
	testDB, repo, cart := setupCartTest(t)
	ctx := context.Background()

	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune", Quantity: 2, PricePerItem: 15}))

	require.NoError(t, repo.Delete(ctx, cart.ID))

	_, err := repo.FindByUserID(ctx, "alice")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var lines int64
	testDB.Conn().Model(&model.CartItem{}).Where("cart_id = ?", cart.ID).Count(&lines)
	assert.Zero(t, lines)

	err = repo.Delete(ctx, cart.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCartRepository_ItemsAreScopedPerCart(t *testing.T) {
	_, repo, cart := setupCartTest(t)
	ctx := context.Background()

	other := &model.ShoppingCart{UserID: "bob"}
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.MergeItem(ctx, cart.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune", Quantity: 2, PricePerItem: 15}))
	require.NoError(t, repo.MergeItem(ctx, other.ID, &model.CartItem{ItemID: "b1", ItemName: "Dune", Quantity: 4, PricePerItem: 15}))

	alice, _ := repo.FindByUserIDWithItems(ctx, "alice")
	bob, _ := repo.FindByUserIDWithItems(ctx, "bob")
	require.Len(t, alice.Items, 1)
	require.Len(t, bob.Items, 1)
	assert.Equal(t, 2, alice.Items[0].Quantity)
	assert.Equal(t, 4, bob.Items[0].Quantity)
}
