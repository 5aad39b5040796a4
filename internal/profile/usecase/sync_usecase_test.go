package usecase

import (
	"context"
	"errors"
	"testing"

	authdomain "community-backend/internal/auth/domain"
	"community-backend/internal/profile/domain"
	"community-backend/pkg/naver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users   map[string]*authdomain.User
	findErr error
	updated *authdomain.User
}

func (r *fakeUserRepo) Create(user *authdomain.User) error { return nil }
func (r *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.users[id], nil
}
func (r *fakeUserRepo) FindByNaverID(naverID string) (*authdomain.User, error) { return nil, nil }
func (r *fakeUserRepo) Update(user *authdomain.User) error {
	r.updated = user
	return nil
}
func (r *fakeUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error { return nil }
func (r *fakeUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return nil, nil
}
func (r *fakeUserRepo) DeleteRefreshToken(token string) error { return nil }

type fakeProfileRepo struct {
	upserted  *domain.Profile
	upsertErr error
}

func (r *fakeProfileRepo) Upsert(profile *domain.Profile) error {
	r.upserted = profile
	return r.upsertErr
}
func (r *fakeProfileRepo) FindByID(id string) (*domain.Profile, error) { return nil, nil }

type fakeNaverClient struct {
	info *naver.UserInfo
	err  error
}

func (c *fakeNaverClient) GetUserInfo(ctx context.Context, accessToken string) (*naver.UserInfo, error) {
	return c.info, c.err
}

func naverUser(id string) *authdomain.User {
	return &authdomain.User{
		ID:       id,
		Email:    "hong@example.com",
		Name:     "Hong Gildong",
		Provider: "naver",
	}
}

func TestSyncUnknownUserReturnsNotFound(t *testing.T) {
	uc := NewSyncUsecase(&fakeUserRepo{}, &fakeProfileRepo{}, &fakeNaverClient{})

	_, err := uc.SyncNaverProfile(context.Background(), "missing", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSyncNonNaverUserRejected(t *testing.T) {
	user := naverUser("u1")
	user.Provider = "email"
	uc := NewSyncUsecase(&fakeUserRepo{users: map[string]*authdomain.User{"u1": user}}, &fakeProfileRepo{}, &fakeNaverClient{})

	_, err := uc.SyncNaverProfile(context.Background(), "u1", "")
	assert.ErrorIs(t, err, ErrNotNaverUser)
}

func TestSyncWithNaverResponsePrefersProviderFields(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*authdomain.User{"u1": naverUser("u1")}}
	profiles := &fakeProfileRepo{}
	uc := NewSyncUsecase(users, profiles, &fakeNaverClient{info: &naver.UserInfo{
		ID:           "naver-1",
		Name:         "Fresh Name",
		Email:        "fresh@naver.com",
		ProfileImage: "https://img.example/fresh.png",
	}})

	profile, err := uc.SyncNaverProfile(context.Background(), "u1", "token")
	require.NoError(t, err)

	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "Fresh Name", profile.Name)
	assert.Equal(t, "fresh@naver.com", profile.Email)
	assert.Equal(t, "https://img.example/fresh.png", profile.ProfileImageURL)
	assert.Equal(t, "naver", profile.Provider)
	require.NotNil(t, profiles.upserted)
	require.NotNil(t, users.updated, "user record follows fresh provider data")
	assert.Equal(t, "Fresh Name", users.updated.Name)
}

func TestSyncNaverFetchFailureFallsBackToStoredFields(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*authdomain.User{"u1": naverUser("u1")}}
	profiles := &fakeProfileRepo{}
	uc := NewSyncUsecase(users, profiles, &fakeNaverClient{err: errors.New("naver API error")})

	profile, err := uc.SyncNaverProfile(context.Background(), "u1", "token")
	require.NoError(t, err, "a failed provider fetch is not fatal")
	assert.Equal(t, "Hong Gildong", profile.Name)
	assert.Equal(t, "hong@example.com", profile.Email)
	assert.Nil(t, users.updated, "no user update without fresh data")
}

func TestSyncWithoutTokenSkipsProviderFetch(t *testing.T) {
	user := naverUser("u1")
	user.Name = ""
	users := &fakeUserRepo{users: map[string]*authdomain.User{"u1": user}}
	uc := NewSyncUsecase(users, &fakeProfileRepo{}, &fakeNaverClient{err: errors.New("must not be called")})

	profile, err := uc.SyncNaverProfile(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "hong", profile.Name, "email local part fallback")
}

func TestSyncNameFallbackToUserConstant(t *testing.T) {
	user := naverUser("u1")
	user.Name = ""
	user.Email = ""
	users := &fakeUserRepo{users: map[string]*authdomain.User{"u1": user}}
	uc := NewSyncUsecase(users, &fakeProfileRepo{}, &fakeNaverClient{})

	profile, err := uc.SyncNaverProfile(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "User", profile.Name)
}

func TestSyncUpsertFailureSurfaces(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*authdomain.User{"u1": naverUser("u1")}}
	profiles := &fakeProfileRepo{upsertErr: errors.New("disk full")}
	uc := NewSyncUsecase(users, profiles, &fakeNaverClient{})

	_, err := uc.SyncNaverProfile(context.Background(), "u1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
