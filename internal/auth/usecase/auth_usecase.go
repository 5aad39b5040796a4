package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	authdomain "community-backend/internal/auth/domain"
	authdto "community-backend/internal/auth/dto"
	"community-backend/internal/auth/repository"
	profiledomain "community-backend/internal/profile/domain"
	profilerepo "community-backend/internal/profile/repository"
	"community-backend/pkg/config"
	"community-backend/pkg/naver"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// AuthUsecase defines the interface for authentication operations
type AuthUsecase interface {
	NaverCallback(ctx context.Context, code, state string) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	ValidateToken(tokenString string) (*authdomain.User, error)
}

// NaverClient is the part of the Naver API the usecase needs.
type NaverClient interface {
	ExchangeCode(ctx context.Context, code, state string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, accessToken string) (*naver.UserInfo, error)
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo    repository.UserRepository
	profileRepo profilerepo.ProfileRepository
	naver       NaverClient
	config      *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, profileRepo profilerepo.ProfileRepository, naverClient NaverClient, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		naver:       naverClient,
		config:      cfg,
	}
}

// NaverCallback exchanges an authorization code for a Naver identity,
// finds or creates the local user, syncs the profile row and issues
// session tokens.
func (u *authUsecase) NaverCallback(ctx context.Context, code, state string) (*authdto.TokenResponse, error) {
	token, err := u.naver.ExchangeCode(ctx, code, state)
	if err != nil {
		return nil, err
	}

	info, err := u.naver.GetUserInfo(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	email := info.Email
	if email == "" {
		// Naver accounts can withhold the email scope.
		email = info.ID + "@naver.oauth.local"
	}
	name := info.Name
	if name == "" {
		name = info.Nickname
	}

	user, err := u.userRepo.FindByNaverID(info.ID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &authdomain.User{
			Email:     email,
			Name:      name,
			AvatarURL: info.ProfileImage,
			Provider:  "naver",
			NaverID:   info.ID,
		}
		if err := u.userRepo.Create(user); err != nil {
			return nil, err
		}
	} else {
		user.Email = email
		if name != "" {
			user.Name = name
		}
		if info.ProfileImage != "" {
			user.AvatarURL = info.ProfileImage
		}
		if err := u.userRepo.Update(user); err != nil {
			return nil, err
		}
	}

	// Keep the public profile row in step with the identity provider.
	// A failed upsert should not block login.
	if err := u.profileRepo.Upsert(&profiledomain.Profile{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		ProfileImageURL: user.AvatarURL,
		Provider:        "naver",
	}); err != nil {
		log.Printf("[Auth] profile upsert failed for user %s: %v", user.ID, err)
	}

	return u.generateTokens(user)
}

func (u *authUsecase) RefreshToken(refreshToken string) (*authdto.TokenResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	storedToken, err := u.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if storedToken == nil || storedToken.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("refresh token expired")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("user not found")
	}

	// Rotate: the old refresh token is spent.
	if err := u.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, err
	}

	return u.generateTokens(user)
}

func (u *authUsecase) generateTokens(user *authdomain.User) (*authdto.TokenResponse, error) {
	accessToken, err := u.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	refreshTokenEntity := &authdomain.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(u.config.JWTRefreshExpiry),
	}
	if err := u.userRepo.SaveRefreshToken(refreshTokenEntity); err != nil {
		return nil, err
	}

	return &authdto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (u *authUsecase) generateAccessToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(u.config.JWTAccessExpiry).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) generateRefreshToken(user *authdomain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"token_id": uuid.New().String(),
		"exp":      time.Now().Add(u.config.JWTRefreshExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) ValidateToken(tokenString string) (*authdomain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(u.config.JWTSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, errors.New("user not found")
	}

	return user, nil
}
