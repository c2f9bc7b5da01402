package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sifan077/GifBoard/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to ":memory:" is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Gif{}))
	return db
}

func TestGifRepository_CreateAssignsIDAndDefaultLikes(t *testing.T) {
	repo := NewGifRepository(newTestDB(t))
	ctx := context.Background()

	gif := &model.Gif{Name: "cat", URL: "http://x/cat.gif"}
	require.NoError(t, repo.Create(ctx, gif))

	assert.NotZero(t, gif.ID)

	stored, err := repo.GetByID(ctx, gif.ID)
	require.NoError(t, err)
	assert.Equal(t, "cat", stored.Name)
	assert.Equal(t, "http://x/cat.gif", stored.URL)
	assert.Equal(t, model.DefaultLikes, stored.Likes)
}

func TestGifRepository_CreateDuplicateName(t *testing.T) {
	repo := NewGifRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Gif{Name: "cat", URL: "http://x/1.gif"}))

	err := repo.Create(ctx, &model.Gif{Name: "cat", URL: "http://x/2.gif"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGifRepository_ListOrdersByLikesDesc(t *testing.T) {
	repo := NewGifRepository(newTestDB(t))
	ctx := context.Background()

	for i, likes := range []int{5, 1, 3} {
		require.NoError(t, repo.Create(ctx, &model.Gif{
			Name:  string(rune('a' + i)),
			URL:   "http://x/gif",
			Likes: likes,
		}))
	}

	gifs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, gifs, 3)
	assert.Equal(t, []int{5, 3, 1}, []int{gifs[0].Likes, gifs[1].Likes, gifs[2].Likes})
}

func TestGifRepository_ListTiesKeepInsertionOrder(t *testing.T) {
	repo := NewGifRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Gif{Name: "first", URL: "u"}))
	require.NoError(t, repo.Create(ctx, &model.Gif{Name: "second", URL: "u"}))

	gifs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, gifs, 2)
	assert.Equal(t, "first", gifs[0].Name)
	assert.Equal(t, "second", gifs[1].Name)
}

func TestGifRepository_ListEmptyIsNotNil(t *testing.T) {
	repo := NewGifRepository(newTestDB(t))

	gifs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, gifs)
	assert.Empty(t, gifs)
}

func TestGifRepository_GetByIDNotFound(t *testing.T) {
	repo := NewGifRepository(newTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrGifNotFound)
}

func TestGifRepository_ExistsByNameAndListNames(t *testing.T) {
	repo := NewGifRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Gif{Name: "cat", URL: "u"}))

	exists, err := repo.ExistsByName(ctx, "cat")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByName(ctx, "dog")
	require.NoError(t, err)
	assert.False(t, exists)

	names, err := repo.ListNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, names)
}
