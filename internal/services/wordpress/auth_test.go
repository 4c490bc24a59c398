package wordpress

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bulkgen/internal/config"
	"bulkgen/internal/logger"
)

func newService(cfg *config.Config) *Service {
	return New(cfg, logger.NewNop())
}

func signToken(t *testing.T, secret, userID string, expiresAt time.Time) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateToken(t *testing.T) {
	svc := newService(&config.Config{JWTSecret: "test-secret"})

	token := signToken(t, "test-secret", "42", time.Now().Add(time.Hour))
	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", userID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newService(&config.Config{JWTSecret: "test-secret"})

	token := signToken(t, "other-secret", "42", time.Now().Add(time.Hour))
	_, err := svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newService(&config.Config{JWTSecret: "test-secret"})

	token := signToken(t, "test-secret", "42", time.Now().Add(-time.Hour))
	_, err := svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenMissingUserID(t *testing.T) {
	svc := newService(&config.Config{JWTSecret: "test-secret"})

	token := signToken(t, "test-secret", "", time.Now().Add(time.Hour))
	_, err := svc.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id")
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newService(&config.Config{JWTSecret: "test-secret"})

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRemote(t *testing.T) {
	wp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/wp-json/jwt-auth/v1/token/validate", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"jwt_auth_valid_token","data":{"status":200}}`))
	}))
	defer wp.Close()

	svc := newService(&config.Config{
		JWTSecret:      "test-secret",
		WordPressURL:   wp.URL,
		RemoteValidate: true,
	})

	token := signToken(t, "test-secret", "42", time.Now().Add(time.Hour))
	userID, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", userID)
}

func TestValidateTokenRemoteRejected(t *testing.T) {
	wp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":"jwt_auth_invalid_token","data":{"status":403}}`))
	}))
	defer wp.Close()

	svc := newService(&config.Config{
		JWTSecret:      "test-secret",
		WordPressURL:   wp.URL,
		RemoteValidate: true,
	})

	token := signToken(t, "test-secret", "42", time.Now().Add(time.Hour))
	_, err := svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestEnabled(t *testing.T) {
	assert.False(t, newService(&config.Config{}).Enabled())
	assert.True(t, newService(&config.Config{JWTSecret: "s"}).Enabled())
}

func TestLoginURL(t *testing.T) {
	svc := newService(&config.Config{
		WordPressLoginURL: "https://ecommercean.com/log-in/",
		AppURL:            "http://localhost:8080",
	})

	got := svc.LoginURL()
	assert.Equal(t, "https://ecommercean.com/log-in/?redirect_to=http%3A%2F%2Flocalhost%3A8080", got)
}
