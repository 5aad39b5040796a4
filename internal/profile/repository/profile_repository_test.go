package repository

import (
	"testing"

	"community-backend/internal/profile/domain"

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
	require.NoError(t, db.AutoMigrate(&domain.Profile{}))
	return db
}

func TestUpsertInsertsThenOverwrites(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&domain.Profile{
		ID: "u1", Name: "Old Name", Email: "old@example.com", Provider: "naver",
	}))

	// Last write wins on the same id.
	require.NoError(t, repo.Upsert(&domain.Profile{
		ID: "u1", Name: "New Name", Email: "new@example.com", ProfileImageURL: "https://img/new.png", Provider: "naver",
	}))

	profile, err := repo.FindByID("u1")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "New Name", profile.Name)
	assert.Equal(t, "new@example.com", profile.Email)
	assert.Equal(t, "https://img/new.png", profile.ProfileImageURL)
}

func TestFindByIDMissingProfileIsNil(t *testing.T) {
	repo := NewProfileRepository(newTestDB(t))

	profile, err := repo.FindByID("missing")
	require.NoError(t, err)
	assert.Nil(t, profile)
}
