package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gksrikar/portfolio/internal/contact"
)

func chdirTemp(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, "/api/contact", cfg.Contact.Endpoint)
	assert.Equal(t, contact.DefaultRecipient, cfg.Contact.FallbackEmail)
	assert.Empty(t, cfg.SMTP.User)
}

func TestLoadEnvironment(t *testing.T) {
	chdirTemp(t)

	t.Setenv("PORT", "9090")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USER", "bot@example.com")
	t.Setenv("PORTFOLIO_DATA_DIR", "/srv/data")
	t.Setenv("PORTFOLIO_CONTACT_FALLBACK_EMAIL", "me@example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr())
	assert.Equal(t, "/srv/data", cfg.DataDir)
	assert.Equal(t, "me@example.com", cfg.Contact.FallbackEmail)

	smtp := cfg.SMTPSettings()
	assert.Equal(t, "smtp.example.com", smtp.Host)
	assert.Equal(t, "bot@example.com", smtp.User)
}

func TestLoadPrefixedWinsOverLegacy(t *testing.T) {
	chdirTemp(t)

	t.Setenv("PORT", "9090")
	t.Setenv("PORTFOLIO_PORT", "7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestLoadFile(t *testing.T) {
	dir := chdirTemp(t)

	file := filepath.Join(dir, "portfolio.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
addr: "127.0.0.1:3000"
mode: debug
log_level: debug
contact:
  endpoint: https://example.com/api/contact
`), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:3000", cfg.ListenAddr())
	assert.Equal(t, "debug", cfg.Mode)
	assert.Equal(t, "https://example.com/api/contact", cfg.Contact.Endpoint)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := chdirTemp(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	chdirTemp(t)

	t.Setenv("PORTFOLIO_MODE", "staging")

	_, err := Load("")
	assert.ErrorContains(t, err, "invalid config")
}
