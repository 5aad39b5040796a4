package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

const userInfoURL = "https://openapi.naver.com/v1/nid/me"

// Endpoint is Naver's OAuth 2.0 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
	TokenURL: "https://nid.naver.com/oauth2.0/token",
}

type Service struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
}

func NewService(clientID, clientSecret, redirectURI string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   http.DefaultClient,
	}
}

func (s *Service) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		RedirectURL:  s.redirectURI,
		Endpoint:     Endpoint,
	}
}

// ExchangeCode trades an authorization code for a Naver access token.
// Naver requires the state parameter on the token request as well.
func (s *Service) ExchangeCode(ctx context.Context, code, state string) (*oauth2.Token, error) {
	token, err := s.oauthConfig().Exchange(ctx, code, oauth2.SetAuthURLParam("state", state))
	if err != nil {
		return nil, fmt.Errorf("naver token exchange failed: %w", err)
	}
	return token, nil
}

// UserInfo is the profile Naver returns from /v1/nid/me.
type UserInfo struct {
	ID           string `json:"id"`
	Nickname     string `json:"nickname"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profile_image"`
}

type userInfoResponse struct {
	ResultCode string   `json:"resultcode"`
	Message    string   `json:"message"`
	Response   UserInfo `json:"response"`
}

// GetUserInfo fetches the Naver profile for an access token. A resultcode
// other than "00" is an API-level failure even on HTTP 200.
func (s *Service) GetUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("naver profile request failed: status %d, body: %s", resp.StatusCode, string(body))
	}

	var parsed userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.New("failed to decode naver profile response: " + err.Error())
	}

	if parsed.ResultCode != "00" {
		return nil, fmt.Errorf("naver API error: %s (%s)", parsed.Message, parsed.ResultCode)
	}

	if parsed.Response.ID == "" {
		return nil, errors.New("naver profile response missing user id")
	}

	return &parsed.Response, nil
}
