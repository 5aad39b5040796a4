package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabaseURL      string
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	NaverClientID     string
	NaverClientSecret string
	NaverRedirectURI  string

	// Deep link the OAuth callback redirects to when the client
	// does not pass redirect_to.
	MobileRedirectURI string

	FirebaseCredentials string
	GoogleProjectID     string
	PubSubTopic         string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	accessExpiry := 15 * time.Minute
	if exp := os.Getenv("JWT_ACCESS_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			accessExpiry = parsed
		}
	}

	refreshExpiry := 168 * time.Hour // 7 days
	if exp := os.Getenv("JWT_REFRESH_EXPIRY"); exp != "" {
		if parsed, err := time.ParseDuration(exp); err == nil {
			refreshExpiry = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:     accessExpiry,
		JWTRefreshExpiry:    refreshExpiry,
		NaverClientID:       getEnv("NAVER_CLIENT_ID", ""),
		NaverClientSecret:   getEnv("NAVER_CLIENT_SECRET", ""),
		NaverRedirectURI:    getEnv("NAVER_REDIRECT_URI", "http://localhost:8080/api/auth/naver/callback"),
		MobileRedirectURI:   getEnv("MOBILE_REDIRECT_URI", "com.example.communityapp://callback"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		PubSubTopic:         getEnv("PUBSUB_TOPIC", "social-events"),
	}
}

// Validate reports every required value that is missing so the server can
// refuse to start instead of failing on the first request that needs one.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if c.NaverClientID == "" {
		missing = append(missing, "NAVER_CLIENT_ID")
	}
	if c.NaverClientSecret == "" {
		missing = append(missing, "NAVER_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
