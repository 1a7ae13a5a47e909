package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewTest(t *testing.T) ReviewRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewReviewRepository(testDB)
}

func TestReviewRepository_CreateAndListByBook(t *testing.T) {
	repo := setupReviewTest(t)
	ctx := context.Background()

	comment := "Awesome book!"
	first := &model.Review{ID: uuid.NewString(), BookID: "b1", Rating: 5, Comment: &comment}
	second := &model.Review{ID: uuid.NewString(), BookID: "b1", Rating: 3}
	other := &model.Review{ID: uuid.NewString(), BookID: "b2", Rating: 1}
	for _, r := range []*model.Review{first, second, other} {
		require.NoError(t, repo.Create(ctx, r))
	}

	reviews, err := repo.FindByBookID(ctx, "b1", 0)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.Equal(t, "b1", r.BookID)
	}

	limited, err := repo.FindByBookID(ctx, "b1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := repo.FindByBookID(ctx, "missing", 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Comment)
	assert.Equal(t, "Awesome book!", *found.Comment)
}

func TestReviewRepository_UpdateAndDelete(t *testing.T) {
	repo := setupReviewTest(t)
	ctx := context.Background()

	review := &model.Review{ID: uuid.NewString(), BookID: "b1", Rating: 2}
	require.NoError(t, repo.Create(ctx, review))

	matched, err := repo.Update(ctx, review.ID, map[string]interface{}{"rating": 4})
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	found, err := repo.FindByID(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, found.Rating)

	matched, err = repo.Update(ctx, uuid.NewString(), map[string]interface{}{"rating": 4})
	require.NoError(t, err)
	assert.Zero(t, matched)

	deleted, err := repo.Delete(ctx, review.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByID(ctx, review.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err = repo.Delete(ctx, review.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
