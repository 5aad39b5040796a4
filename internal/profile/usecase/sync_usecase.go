package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	authrepo "community-backend/internal/auth/repository"
	"community-backend/internal/profile/domain"
	"community-backend/internal/profile/repository"
	"community-backend/pkg/naver"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNotNaverUser = errors.New("user did not sign in with naver")
)

// NaverProfileClient fetches the live Naver profile for an access token.
type NaverProfileClient interface {
	GetUserInfo(ctx context.Context, accessToken string) (*naver.UserInfo, error)
}

// SyncUsecase reconciles the identity provider's profile fields into the
// local user_profiles row.
type SyncUsecase interface {
	SyncNaverProfile(ctx context.Context, userID, accessToken string) (*domain.Profile, error)
}

type syncUsecase struct {
	userRepo    authrepo.UserRepository
	profileRepo repository.ProfileRepository
	naver       NaverProfileClient
}

func NewSyncUsecase(userRepo authrepo.UserRepository, profileRepo repository.ProfileRepository, naverClient NaverProfileClient) SyncUsecase {
	return &syncUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		naver:       naverClient,
	}
}

// SyncNaverProfile upserts the profile row for a Naver user. When an access
// token is given the live Naver profile wins; otherwise the stored user
// fields are used, with the email local part and finally "User" as
// display-name fallbacks. A failed Naver fetch is logged, never fatal.
func (u *syncUsecase) SyncNaverProfile(ctx context.Context, userID, accessToken string) (*domain.Profile, error) {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Provider != "naver" {
		return nil, ErrNotNaverUser
	}

	var info *naver.UserInfo
	if accessToken != "" {
		info, err = u.naver.GetUserInfo(ctx, accessToken)
		if err != nil {
			log.Printf("[Profile] naver profile fetch failed for user %s: %v", userID, err)
			info = nil
		}
	}

	profile := &domain.Profile{
		ID:       userID,
		Provider: "naver",
	}

	if info != nil {
		profile.Name = firstNonEmpty(info.Name, info.Nickname)
		profile.Email = info.Email
		profile.ProfileImageURL = info.ProfileImage
	}
	profile.Name = firstNonEmpty(profile.Name, user.Name, emailLocalPart(user.Email), "User")
	profile.Email = firstNonEmpty(profile.Email, user.Email)
	profile.ProfileImageURL = firstNonEmpty(profile.ProfileImageURL, user.AvatarURL)

	if err := u.profileRepo.Upsert(profile); err != nil {
		return nil, err
	}

	// Keep the user record in step when the provider returned fresh data.
	// Best effort only, the profile row is already saved.
	if info != nil {
		user.Name = profile.Name
		user.AvatarURL = profile.ProfileImageURL
		if profile.Email != "" {
			user.Email = profile.Email
		}
		if err := u.userRepo.Update(user); err != nil {
			log.Printf("[Profile] user update failed for %s: %v", userID, err)
		}
	}

	return profile, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return ""
}
