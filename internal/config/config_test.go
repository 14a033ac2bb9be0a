package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "learnhub", cfg.Database.DBName)
	assert.Equal(t, "1h", cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "720h", cfg.JWT.RefreshTokenExpiration)
	assert.Equal(t, "learnhub.app", cfg.JWT.Issuer)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
  mode: production
database:
  host: db.internal
  dbname: learnhub_prod
jwt:
  secret: file-secret
payment:
  gateway_url: https://pay.example.com
  api_key: live-key
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Mode)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "learnhub_prod", cfg.Database.DBName)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "https://pay.example.com", cfg.Payment.GatewayURL)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
jwt:
  secret: file-secret
`)

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DB_HOST", "env-db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, "env-db", cfg.Database.Host)
}

func TestLoadConfig_MissingJWTSecret(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}

func TestLoadConfig_InvalidExpiration(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: file-secret
  access_token_expiration: not-a-duration
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "learnhub"
	cfg.Database.SSLMode = "require"

	assert.Equal(t,
		"postgres://app:pw@db:5433/learnhub?sslmode=require",
		cfg.GetPostgresConnectionString(),
	)
}
