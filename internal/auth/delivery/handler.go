package delivery

import (
	"log"
	"net/http"
	"net/url"

	"community-backend/internal/auth/dto"
	"community-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// The mobile client needs a navigable URL even on failure, so redirect
// error messages are capped to keep the deep link short.
const maxRedirectErrorLen = 100

type AuthHandler struct {
	authUsecase       usecase.AuthUsecase
	defaultRedirectTo string
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, defaultRedirectTo string) *AuthHandler {
	return &AuthHandler{
		authUsecase:       authUsecase,
		defaultRedirectTo: defaultRedirectTo,
	}
}

// NaverCallback handles GET /api/auth/naver/callback. Every outcome,
// including a panic, becomes a 302 to the app deep link: the mobile client
// never sees a raw error body from this endpoint.
func (h *AuthHandler) NaverCallback(c *gin.Context) {
	redirectTo := c.Query("redirect_to")
	if redirectTo == "" {
		redirectTo = h.defaultRedirectTo
	}

	fail := func(msg string) {
		// Cut on rune boundaries so multibyte provider messages stay readable.
		if runes := []rune(msg); len(runes) > maxRedirectErrorLen {
			msg = string(runes[:maxRedirectErrorLen])
		}
		log.Printf("[Auth] naver callback failed: %s", msg)
		params := url.Values{}
		params.Set("error", msg)
		c.Redirect(http.StatusFound, redirectTo+"?"+params.Encode())
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Auth] panic in naver callback: %v", r)
			fail("internal server error")
		}
	}()

	if errParam := c.Query("error"); errParam != "" {
		msg := c.Query("error_description")
		if msg == "" {
			msg = errParam
		}
		fail(msg)
		return
	}

	code := c.Query("code")
	if code == "" {
		fail("missing authorization code")
		return
	}

	tokens, err := h.authUsecase.NaverCallback(c.Request.Context(), code, c.Query("state"))
	if err != nil {
		fail(err.Error())
		return
	}

	params := url.Values{}
	params.Set("success", "true")
	params.Set("user_id", tokens.User.ID)
	params.Set("access_token", tokens.AccessToken)
	params.Set("refresh_token", tokens.RefreshToken)
	c.Redirect(http.StatusFound, redirectTo+"?"+params.Encode())
}

// RefreshToken handles POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh_token is required"})
		return
	}

	tokens, err := h.authUsecase.RefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, tokens)
}
