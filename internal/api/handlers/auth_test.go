package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkgen/internal/config"
	"bulkgen/internal/logger"
	"bulkgen/internal/services/wordpress"
)

func authRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:         secret,
		WordPressLoginURL: "https://ecommercean.com/log-in/",
		AppURL:            "http://localhost:8080",
	}
	h := NewAuthHandler(wordpress.New(cfg, logger.New("error")))

	router := gin.New()
	router.GET("/login-url", h.LoginURL)
	router.GET("/check", h.Check)
	return router
}

func signSessionToken(t *testing.T, secret, userID string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthLoginURL(t *testing.T) {
	router := authRouter(t, "s3cret")

	w := doJSON(t, router, http.MethodGet, "/login-url", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "redirect_to=")
	assert.Contains(t, w.Body.String(), `"auth_enabled":true`)
}

func TestAuthCheckDisabled(t *testing.T) {
	router := authRouter(t, "")

	w := doJSON(t, router, http.MethodGet, "/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"auth_enabled":false`)
}

func TestAuthCheckValidToken(t *testing.T) {
	router := authRouter(t, "s3cret")
	token := signSessionToken(t, "s3cret", "7")

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), `"user_id":"7"`)
}

func TestAuthCheckMissingToken(t *testing.T) {
	router := authRouter(t, "s3cret")

	w := doJSON(t, router, http.MethodGet, "/check", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
	assert.Contains(t, w.Body.String(), "login_url")
}

func TestAuthCheckBadToken(t *testing.T) {
	router := authRouter(t, "s3cret")
	token := signSessionToken(t, "wrong-secret", "7")

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
