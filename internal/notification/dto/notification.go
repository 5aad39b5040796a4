package dto

import "community-backend/internal/notification/domain"

type PushRequest struct {
	UserID    string         `json:"userId" binding:"required"`
	Title     string         `json:"title" binding:"required"`
	Body      string         `json:"body" binding:"required"`
	ChannelID string         `json:"channelId"`
	Data      map[string]any `json:"data"`
}

type CommentNotificationRequest struct {
	PostID       string `json:"postId" binding:"required"`
	CommentID    string `json:"commentId" binding:"required"`
	CommenterID  string `json:"commenterId" binding:"required"`
	PostAuthorID string `json:"postAuthorId" binding:"required"`
}

type LikeNotificationRequest struct {
	PostID       string `json:"postId" binding:"required"`
	LikerID      string `json:"likerId" binding:"required"`
	PostAuthorID string `json:"postAuthorId" binding:"required"`
}

type TriggerResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Result  *domain.DispatchSummary `json:"result,omitempty"`
}

type RegisterDeviceRequest struct {
	Token      string `json:"token" binding:"required"`
	DeviceType string `json:"deviceType" binding:"required"`
}
