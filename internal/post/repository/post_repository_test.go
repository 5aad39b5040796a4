package repository

import (
	"testing"

	"community-backend/internal/post/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Post{}, &domain.PostLike{}))
	return db
}

func TestFindByIDMissingPostIsNil(t *testing.T) {
	repo := NewPostRepository(newTestDB(t))

	post, err := repo.FindByID("missing")
	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, post)
}

func TestFindByID(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&domain.Post{ID: "p1", AuthorID: "u1", Content: "hello"}).Error)
	repo := NewPostRepository(db)

	post, err := repo.FindByID("p1")
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "hello", post.Content)
}

func TestCountLikes(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	count, err := repo.CountLikes("p1")
	require.NoError(t, err)
	assert.Zero(t, count)

	for i, user := range []string{"u1", "u2", "u3"} {
		require.NoError(t, db.Create(&domain.PostLike{ID: string(rune('a' + i)), PostID: "p1", UserID: user}).Error)
	}
	require.NoError(t, db.Create(&domain.PostLike{ID: "z", PostID: "p2", UserID: "u1"}).Error)

	count, err = repo.CountLikes("p1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
