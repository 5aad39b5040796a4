package main

import (
	"context"
	"log"

	api "community-backend/cmd/api"
	authdomain "community-backend/internal/auth/domain"
	authRepo "community-backend/internal/auth/repository"
	authUsecase "community-backend/internal/auth/usecase"
	"community-backend/internal/events"
	notifdomain "community-backend/internal/notification/domain"
	notifRepo "community-backend/internal/notification/repository"
	notifUsecase "community-backend/internal/notification/usecase"
	postdomain "community-backend/internal/post/domain"
	postRepo "community-backend/internal/post/repository"
	profiledomain "community-backend/internal/profile/domain"
	profileRepo "community-backend/internal/profile/repository"
	profileUsecase "community-backend/internal/profile/usecase"
	"community-backend/pkg/config"
	"community-backend/pkg/database"
	"community-backend/pkg/fcm"
	"community-backend/pkg/naver"
)

func main() {
	// Load configuration and refuse to start with an incomplete one
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&notifdomain.DeviceToken{},
		&profiledomain.Profile{},
		&postdomain.Post{},
		&postdomain.Comment{},
		&postdomain.PostLike{},
	); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	deviceTokenRepository := notifRepo.NewDeviceTokenRepository(db)
	profileRepository := profileRepo.NewProfileRepository(db)
	postRepository := postRepo.NewPostRepository(db)

	// Initialize Naver OAuth client
	naverService := naver.NewService(cfg.NaverClientID, cfg.NaverClientSecret, cfg.NaverRedirectURI)

	// Initialize FCM client
	if cfg.FirebaseCredentials == "" {
		log.Printf("[WARN] FIREBASE_CREDENTIALS not configured, using application default credentials")
	}
	fcmClient, err := fcm.NewClient(cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal("Failed to initialize FCM client: ", err)
	}

	// Initialize use cases (dependency injection)
	dispatcher := notifUsecase.NewPushDispatcher(deviceTokenRepository, fcmClient)
	notifier := notifUsecase.NewNotifier(profileRepository, postRepository, dispatcher)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, profileRepository, naverService, cfg)
	syncUsecaseInstance := profileUsecase.NewSyncUsecase(userRepository, profileRepository, naverService)

	// Start the Pub/Sub event subscriber when a project is configured
	if cfg.GoogleProjectID != "" {
		eventService, err := events.NewService(cfg.GoogleProjectID, cfg.PubSubTopic, notifier, cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize event subscriber: %v", err)
		} else {
			go eventService.Start(context.Background())
		}
	} else {
		log.Printf("[WARN] GOOGLE_PROJECT_ID not configured, event subscriber disabled")
	}

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, dispatcher, notifier, syncUsecaseInstance, deviceTokenRepository, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
