package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobi-server/internal/config"
	"jobi-server/pkg/models"
)

// fakeProvider mimics the identity provider's credential exchange endpoint
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "accounts:signInWithPassword")

		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Password != "correct-horse" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		json.NewEncoder(w).Encode(map[string]string{
			"localId": "uid-123",
			"email":   req.Email,
			"idToken": "provider-token",
		})
	}))
}

func testGatewayConfig(providerURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Auth.ProviderURL = providerURL
	cfg.Auth.APIKey = "test-key"
	cfg.Auth.Timeout = 5 * time.Second
	cfg.Auth.SessionSecret = "unit-test-secret"
	cfg.Auth.SessionTTL = time.Hour
	cfg.Auth.AdminEmails = []string{"admin@jobi.example"}
	return cfg
}

func TestLoginAndVerifyRoundTrip(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()

	g := NewGateway(testGatewayConfig(provider.URL))

	token, expiresAt, user, err := g.Login(context.Background(), "admin@jobi.example", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	require.NotNil(t, user)
	assert.Equal(t, "uid-123", user.ID)
	assert.Equal(t, "admin@jobi.example", user.Email)

	verified, err := g.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)
	assert.Equal(t, user.Email, verified.Email)
}

func TestLoginInvalidCredentials(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()

	g := NewGateway(testGatewayConfig(provider.URL))

	_, _, _, err := g.Login(context.Background(), "someone@jobi.example", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginProviderUnreachable(t *testing.T) {
	g := NewGateway(testGatewayConfig("http://127.0.0.1:1"))

	_, _, _, err := g.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()

	g := NewGateway(testGatewayConfig(provider.URL))

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"wrong secret", func() string {
			other := NewGateway(testGatewayConfig(provider.URL))
			other.secret = []byte("different-secret")
			token, _, _, err := other.Login(context.Background(), "a@b.c", "correct-horse")
			require.NoError(t, err)
			return token
		}()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Verify(tc.token)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()

	cfg := testGatewayConfig(provider.URL)
	cfg.Auth.SessionTTL = -time.Hour
	g := NewGateway(cfg)

	token, _, _, err := g.Login(context.Background(), "a@b.c", "correct-horse")
	require.NoError(t, err)

	_, err = g.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestIsAdmin(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()

	g := NewGateway(testGatewayConfig(provider.URL))

	assert.True(t, g.IsAdmin(&models.User{Email: "admin@jobi.example"}))
	assert.True(t, g.IsAdmin(&models.User{Email: "ADMIN@Jobi.Example"}), "allow-list check ignores case")
	assert.False(t, g.IsAdmin(&models.User{Email: "visitor@jobi.example"}))
	assert.False(t, g.IsAdmin(&models.User{}))
	assert.False(t, g.IsAdmin(nil))
}

func TestWatcherSubscribeAndUnsubscribe(t *testing.T) {
	w := NewWatcher()

	var got []*models.User
	unsubscribe := w.Subscribe(func(u *models.User) {
		got = append(got, u)
	})

	w.notify(&models.User{ID: "u1"})
	require.Len(t, got, 1)
	assert.Equal(t, "u1", got[0].ID)

	unsubscribe()
	w.notify(&models.User{ID: "u2"})
	assert.Len(t, got, 1, "unsubscribed observer receives nothing")

	// Unsubscribe is safe to call twice
	unsubscribe()
}

func TestLoginNotifiesSubscribers(t *testing.T) {
	provider := fakeProvider(t)
	defer provider.Close()

	g := NewGateway(testGatewayConfig(provider.URL))

	var seen *models.User
	defer g.Subscribe(func(u *models.User) { seen = u })()

	_, _, _, err := g.Login(context.Background(), "admin@jobi.example", "correct-horse")
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "uid-123", seen.ID)
}
