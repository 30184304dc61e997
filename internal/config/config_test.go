package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/catalog"
auth:
  jwt_secret: "s3cret"
  token_ttl_hours: 12
server:
  port: ":9090"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/catalog", cfg.Database.URL)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 12, cfg.Auth.TokenTTLHours)
	assert.Equal(t, ":9090", cfg.Server.Port)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "s3cret"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/catalog"
auth:
  jwt_secret: "from-file"
`)

	t.Setenv("DATABASE_URL", "postgres://db:5432/other")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://db:5432/other", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	path := writeConfig(t, `
database:
  url: "postgres://localhost/catalog"
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
