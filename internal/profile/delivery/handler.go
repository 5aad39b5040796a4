package delivery

import (
	"errors"
	"net/http"

	"community-backend/internal/profile/dto"
	"community-backend/internal/profile/usecase"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	syncUsecase usecase.SyncUsecase
}

func NewProfileHandler(syncUsecase usecase.SyncUsecase) *ProfileHandler {
	return &ProfileHandler{
		syncUsecase: syncUsecase,
	}
}

// SyncNaverProfile handles POST /api/auth/naver/sync-profile
func (h *ProfileHandler) SyncNaverProfile(c *gin.Context) {
	var req dto.SyncProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	profile, err := h.syncUsecase.SyncNaverProfile(c.Request.Context(), req.UserID, req.AccessToken)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, usecase.ErrNotNaverUser):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync profile", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SyncProfileResponse{
		Success: true,
		Message: "naver profile synced",
		Profile: profile,
	})
}
