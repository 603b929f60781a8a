package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
server:
  port: "9090"
  mode: debug
database:
  driver: postgres
  host: localhost
  port: 5432
  user: survey
  dbname: survey
jwt:
  secret: test-secret
  expire_minutes: 30
telegram:
  enabled: true
  token: "123:abc"
  session_store: memory
  recent_groups: 5
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeConfig(t, sampleConfig)
	t.Setenv("STORAGE_TYPE", "minio")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.JWT.ExpireTime)
	assert.Equal(t, 24*time.Hour, cfg.Telegram.SessionTTL)
	assert.Equal(t, 5, cfg.Telegram.RecentGroups)
	assert.Equal(t, "minio", cfg.Storage.Type)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Mode: "debug"},
			Database: DatabaseConfig{Driver: "mysql"},
			Telegram: TelegramConfig{SessionStore: "memory"},
		}
	}

	t.Run("ok", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("short secret in release", func(t *testing.T) {
		cfg := base()
		cfg.Server.Mode = "release"
		cfg.JWT.Secret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bot without token", func(t *testing.T) {
		cfg := base()
		cfg.Telegram.Enabled = true
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis sessions without redis", func(t *testing.T) {
		cfg := base()
		cfg.Telegram.SessionStore = "redis"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := base()
		cfg.Database.Driver = "sqlite"
		assert.Error(t, cfg.Validate())
	})
}
