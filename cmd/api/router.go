package api

import (
	"net/http"

	authDelivery "community-backend/internal/auth/delivery"
	authUsecase "community-backend/internal/auth/usecase"
	notifDelivery "community-backend/internal/notification/delivery"
	profileDelivery "community-backend/internal/profile/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, authHandler *authDelivery.AuthHandler, notifHandler *notifDelivery.NotificationHandler, profileHandler *profileDelivery.ProfileHandler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.GET("/naver/callback", authHandler.NaverCallback)
			auth.POST("/naver/sync-profile", profileHandler.SyncNaverProfile)
			auth.POST("/refresh", authHandler.RefreshToken)
		}

		// Notification fan-out routes (called by triggers and services)
		notifications := api.Group("/notifications")
		{
			notifications.POST("/push", notifHandler.SendPush)
			notifications.POST("/comment", notifHandler.SendCommentNotification)
			notifications.POST("/like", notifHandler.SendLikeNotification)
		}

		// Device token routes (protected)
		devices := api.Group("/devices")
		devices.Use(authDelivery.AuthMiddleware(authUc))
		{
			devices.POST("/register", notifHandler.RegisterDevice)
			devices.DELETE("/:token", notifHandler.UnregisterDevice)
		}
	}
}
