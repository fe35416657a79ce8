package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the file", func(t *testing.T) {
		// Given: a config file with every section filled
		path := writeConfig(t, `
log-level: debug
http-port: "9191"
socket-port: "8181"
storage: redis
session-ttl: 90m
redis:
  host: cache
  port: "6380"
presentation:
  show-locations: true
  highlight-winner: true
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every field is populated
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9191", conf.HTTPPort)
		assert.Equal(t, "8181", conf.SocketPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, 90*time.Minute, conf.SessionTTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.True(t, conf.Presentation.ShowLocations)
		assert.True(t, conf.Presentation.HighlightWinner)
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: an almost empty config file
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf, err := Load(path)

		// Then: defaults are applied
		require.NoError(t, err)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "8080", conf.SocketPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a config file and an override in the environment
		path := writeConfig(t, "storage: memory\n")
		t.Setenv("STORAGE", StorageRedis)

		// When: loading it
		conf, err := Load(path)

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, StorageRedis, conf.Storage)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to load config file")
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("Defaults without any variables", func(t *testing.T) {
		conf, err := LoadEnv()

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, 24*time.Hour, conf.SessionTTL)
		assert.False(t, conf.Presentation.ShowLocations)
	})

	t.Run("Reads the environment", func(t *testing.T) {
		// Given: settings only in the environment
		t.Setenv("STORAGE", StorageRedis)
		t.Setenv("REDIS_HOST", "cache")
		t.Setenv("SESSION_TTL", "15m")
		t.Setenv("SHOW_LOCATIONS", "true")

		// When: loading without a file
		conf, err := LoadEnv()

		// Then: the values come from the environment
		require.NoError(t, err)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 15*time.Minute, conf.SessionTTL)
		assert.True(t, conf.Presentation.ShowLocations)
	})

	t.Run("Bad duration is an error", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "soon")

		_, err := LoadEnv()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to read environment")
	})
}
