package dto

import "community-backend/internal/profile/domain"

type SyncProfileRequest struct {
	UserID      string `json:"userId" binding:"required"`
	AccessToken string `json:"accessToken"`
}

type SyncProfileResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Profile *domain.Profile `json:"profile"`
}
