package domain

import "time"

// Profile is the public-facing profile row, keyed on the user id.
// Writes are last-write-wins upserts.
type Profile struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profile_image_url"`
	Provider        string    `json:"provider"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "user_profiles"
}
