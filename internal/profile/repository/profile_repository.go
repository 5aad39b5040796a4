package repository

import (
	"errors"
	"time"

	"community-backend/internal/profile/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines the interface for user profile operations
type ProfileRepository interface {
	Upsert(profile *domain.Profile) error
	FindByID(id string) (*domain.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// Upsert inserts or overwrites the profile row keyed on id.
func (r *profileRepository) Upsert(profile *domain.Profile) error {
	profile.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "profile_image_url", "provider", "updated_at"}),
	}).Create(profile).Error
}

func (r *profileRepository) FindByID(id string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
