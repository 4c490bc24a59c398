package wordpress

import (
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"bulkgen/internal/config"
	"bulkgen/internal/logger"
)

// Service checks WordPress session tokens and builds login redirects. The
// membership site issues HS256 JWTs; we share its signing secret.
type Service struct {
	config *config.Config
	logger *logger.Logger
	client *resty.Client
}

// New creates a new WordPress auth service
func New(cfg *config.Config, log *logger.Logger) *Service {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &Service{
		config: cfg,
		logger: log,
		client: client,
	}
}

// Claims carries the WordPress user id alongside the registered JWT fields.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Enabled reports whether token checks are active. With no shared secret
// configured the app runs open for local development.
func (s *Service) Enabled() bool {
	return s.config.JWTSecret != ""
}

// ValidateToken verifies a token issued by the WordPress JWT plugin and
// returns the embedded user id.
func (s *Service) ValidateToken(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("token is not valid")
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("token has no user_id claim")
	}

	if s.config.RemoteValidate {
		if err := s.validateRemote(token); err != nil {
			return "", err
		}
	}

	return claims.UserID, nil
}

type validateResponse struct {
	Code string `json:"code"`
	Data struct {
		Status int `json:"status"`
	} `json:"data"`
}

// validateRemote asks the WordPress site itself to confirm the token is
// still good, catching revoked sessions the local check cannot see.
func (s *Service) validateRemote(token string) error {
	endpoint := s.config.WordPressURL + "/wp-json/jwt-auth/v1/token/validate"

	var res validateResponse
	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+token).
		SetResult(&res).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("failed to validate token with wordpress: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("wordpress rejected token: status %d", resp.StatusCode())
	}
	if res.Code != "jwt_auth_valid_token" {
		return fmt.Errorf("wordpress rejected token: %s", res.Code)
	}

	return nil
}

// LoginURL is where unauthenticated users are sent. WordPress bounces them
// back to the app after login.
func (s *Service) LoginURL() string {
	return s.config.WordPressLoginURL + "?redirect_to=" + url.QueryEscape(s.config.AppURL)
}
