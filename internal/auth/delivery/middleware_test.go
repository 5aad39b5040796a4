package delivery

import (
	"net/http"
	"net/http/httptest"
	"testing"

	authdomain "community-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectedRouter(uc *stubAuthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(uc))
	r.GET("/me", func(c *gin.Context) {
		user := c.MustGet("user").(*authdomain.User)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return r
}

func getWithAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	r := protectedRouter(&stubAuthUsecase{user: &authdomain.User{ID: "u1"}})

	for _, header := range []string{
		"",
		"Bearer",
		"Bearer ",
		"Basic dXNlcjpwYXNz",
		"token-without-scheme",
	} {
		w := getWithAuth(r, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q must be rejected", header)
	}
}

func TestAuthMiddlewareRejectsInvalidToken(t *testing.T) {
	r := protectedRouter(&stubAuthUsecase{})

	w := getWithAuth(r, "Bearer expired-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareSetsUser(t *testing.T) {
	r := protectedRouter(&stubAuthUsecase{user: &authdomain.User{ID: "u1"}})

	w := getWithAuth(r, "Bearer good-token")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}
