// Package auth implements the identity gateway: credential exchange against
// the external identity provider, session token verification, and the admin
// allow-list check. The provider owns all account state; this package only
// brokers sessions for it.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"

	"jobi-server/internal/config"
	"jobi-server/internal/logging"
	"jobi-server/pkg/models"
	"jobi-server/pkg/utils"
)

var (
	// ErrInvalidCredentials is returned when the provider rejects the
	// email/password exchange
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidSession is returned for a missing, malformed, or expired
	// session token
	ErrInvalidSession = errors.New("invalid or expired session")
)

// sessionClaims is the claim set carried by a session token
type sessionClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// Gateway brokers sessions against the external identity provider. It is
// constructed once at the composition root and injected into handlers.
type Gateway struct {
	providerURL string
	apiKey      string
	secret      []byte
	sessionTTL  time.Duration
	adminEmails []string
	httpClient  *http.Client
	watcher     *Watcher
	logger      logging.Logger
}

// NewGateway creates a new identity gateway from configuration
func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		providerURL: cfg.Auth.ProviderURL,
		apiKey:      cfg.Auth.APIKey,
		secret:      []byte(cfg.Auth.SessionSecret),
		sessionTTL:  cfg.Auth.SessionTTL,
		adminEmails: cfg.Auth.AdminEmails,
		httpClient:  &http.Client{Timeout: cfg.Auth.Timeout},
		watcher:     NewWatcher(),
		logger:      logging.GetGlobalLogger(),
	}
}

// signInRequest is the provider's credential exchange payload
type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// signInResponse is the provider's credential exchange result
type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

// Login performs the email/password credential exchange against the identity
// provider and mints a session token for the authenticated user
func (g *Gateway) Login(ctx context.Context, email, password string) (string, time.Time, *models.User, error) {
	payload, err := json.Marshal(signInRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to marshal sign-in request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/accounts:signInWithPassword?key=%s", g.providerURL, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", time.Time{}, nil, utils.NewUpstreamError(
			fmt.Sprintf("identity provider returned %d: %s", resp.StatusCode, string(body)))
	}

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to decode sign-in response: %w", err)
	}

	user := &models.User{ID: result.LocalID, Email: result.Email}

	expiresAt := time.Now().Add(g.sessionTTL)
	claims := sessionClaims{
		Email: user.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.ID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	g.logger.Info("Credential exchange succeeded", map[string]interface{}{
		"user_id":  user.ID,
		"is_admin": g.IsAdmin(user),
	})

	g.watcher.notify(user)

	return token, expiresAt, user, nil
}

// Verify validates a session token and returns the user it describes
func (g *Gateway) Verify(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	return &models.User{ID: claims.Subject, Email: claims.Email}, nil
}

// IsAdmin reports whether the user's email is in the configured allow-list.
// A nil user is never an admin. This gates the moderation views; real access
// control is enforced by the external store's own rules.
func (g *Gateway) IsAdmin(user *models.User) bool {
	if user == nil || user.Email == "" {
		return false
	}
	return utils.ContainsFold(g.adminEmails, user.Email)
}

// Subscribe registers a session observer and returns its unsubscribe handle
func (g *Gateway) Subscribe(fn func(*models.User)) func() {
	return g.watcher.Subscribe(fn)
}
