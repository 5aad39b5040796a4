package api

import (
	"log"
	"net/http"

	authDelivery "community-backend/internal/auth/delivery"
	authUsecase "community-backend/internal/auth/usecase"
	notifDelivery "community-backend/internal/notification/delivery"
	notifRepo "community-backend/internal/notification/repository"
	notifUsecase "community-backend/internal/notification/usecase"
	profileDelivery "community-backend/internal/profile/delivery"
	profileUsecase "community-backend/internal/profile/usecase"
	"community-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase    authUsecase.AuthUsecase
	authHandler    *authDelivery.AuthHandler
	notifHandler   *notifDelivery.NotificationHandler
	profileHandler *profileDelivery.ProfileHandler
	config         *config.Config
}

func NewHandler(authUc authUsecase.AuthUsecase, dispatcher notifUsecase.PushDispatcher, notifier notifUsecase.Notifier, syncUc profileUsecase.SyncUsecase, tokenRepo notifRepo.DeviceTokenRepository, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:    authUc,
		authHandler:    authDelivery.NewAuthHandler(authUc, cfg.MobileRedirectURI),
		notifHandler:   notifDelivery.NewNotificationHandler(dispatcher, notifier, tokenRepo),
		profileHandler: profileDelivery.NewProfileHandler(syncUc),
		config:         cfg,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	return h.engine().Run(addr)
}

func (h *Handler) engine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())

	// Unexpected panics become the standard JSON failure shape instead of
	// a bare platform 500. The OAuth callback installs its own recovery
	// because it must redirect instead.
	r.Use(func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[API] panic recovered: %v", rec)
				if !c.Writer.Written() {
					c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				}
			}
		}()
		c.Next()
	})

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.authHandler, h.notifHandler, h.profileHandler)

	return r
}
