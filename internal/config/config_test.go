package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis://localhost:6379", cfg.Store.URL)
	assert.Equal(t, "jobs", cfg.Store.Collection)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 6, cfg.Submissions.RateLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Auth.AdminEmails)
}

func TestLoadConfig_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9090
store:
  collection: postings
auth:
  session_ttl: 12h
  admin_emails:
    - admin@jobi.dev
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postings", cfg.Store.Collection)
	assert.Equal(t, 12*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"admin@jobi.dev"}, cfg.Auth.AdminEmails)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("STORE_URL", "redis://cache.internal:6380")
	t.Setenv("SESSION_SECRET", "env-secret")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("ADMIN_EMAILS", "one@jobi.dev, two@jobi.dev ,")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis://cache.internal:6380", cfg.Store.URL)
	assert.Equal(t, "env-secret", cfg.Auth.SessionSecret)
	assert.Equal(t, time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, []string{"one@jobi.dev", "two@jobi.dev"}, cfg.Auth.AdminEmails)
}

func TestLoadConfig_EnvBeatsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0644))

	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("JOBI_TEST_SECRET", "s3cret")

	assert.Equal(t, "token=s3cret", expandEnvVars("token=${JOBI_TEST_SECRET}"))
	assert.Equal(t, "token=s3cret", expandEnvVars("token=$JOBI_TEST_SECRET"))
	// Unset variables are left untouched so the YAML stays inspectable
	assert.Equal(t, "${JOBI_UNSET_VAR}", expandEnvVars("${JOBI_UNSET_VAR}"))
}
