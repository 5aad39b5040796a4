package delivery

import (
	"errors"
	"net/http"

	authdomain "community-backend/internal/auth/domain"
	"community-backend/internal/notification/domain"
	"community-backend/internal/notification/dto"
	"community-backend/internal/notification/repository"
	"community-backend/internal/notification/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	dispatcher usecase.PushDispatcher
	notifier   usecase.Notifier
	tokenRepo  repository.DeviceTokenRepository
}

func NewNotificationHandler(dispatcher usecase.PushDispatcher, notifier usecase.Notifier, tokenRepo repository.DeviceTokenRepository) *NotificationHandler {
	return &NotificationHandler{
		dispatcher: dispatcher,
		notifier:   notifier,
		tokenRepo:  tokenRepo,
	}
}

// SendPush handles POST /api/notifications/push
func (h *NotificationHandler) SendPush(c *gin.Context) {
	var req dto.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, title and body are required"})
		return
	}

	summary, err := h.dispatcher.Dispatch(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrNoDeviceTokens):
			c.JSON(http.StatusNotFound, gin.H{"error": "no device tokens found for user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send push notification", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// SendCommentNotification handles POST /api/notifications/comment
func (h *NotificationHandler) SendCommentNotification(c *gin.Context) {
	var req dto.CommentNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId, commentId, commenterId and postAuthorId are required"})
		return
	}

	result, err := h.notifier.NotifyComment(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send comment notification", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, triggerResponse(result))
}

// SendLikeNotification handles POST /api/notifications/like
func (h *NotificationHandler) SendLikeNotification(c *gin.Context) {
	var req dto.LikeNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "postId, likerId and postAuthorId are required"})
		return
	}

	result, err := h.notifier.NotifyLike(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send like notification", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, triggerResponse(result))
}

func triggerResponse(result *usecase.NotifyResult) dto.TriggerResponse {
	return dto.TriggerResponse{
		Success: !result.Skipped,
		Message: result.Message,
		Result:  result.Summary,
	}
}

// RegisterDevice handles POST /api/devices/register (authenticated)
func (h *NotificationHandler) RegisterDevice(c *gin.Context) {
	var req dto.RegisterDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token and deviceType are required"})
		return
	}

	if !domain.ValidDeviceType(req.DeviceType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deviceType must be one of ios, android, web"})
		return
	}

	user := c.MustGet("user").(*authdomain.User)
	if err := h.tokenRepo.SaveToken(user.ID, req.Token, req.DeviceType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "device token registered"})
}

// UnregisterDevice handles DELETE /api/devices/:token (authenticated)
func (h *NotificationHandler) UnregisterDevice(c *gin.Context) {
	token := c.Param("token")
	if err := h.tokenRepo.DeleteToken(token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister device token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "device token removed"})
}
