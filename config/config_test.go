package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("success - defaults without a config file", func(t *testing.T) {
		cfg, err := load(t.TempDir())

		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "http://localhost:3000", cfg.WahaAPIURL)
		assert.Equal(t, "waha:webhooks", cfg.RedisChannel)
		assert.Equal(t, 64, cfg.StreamClientBuffer)
		assert.False(t, cfg.RedisEnabled())
		assert.False(t, cfg.SendThrottled())
	})

	t.Run("success - environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("WAHA_API_URL", "http://waha:3000")
		t.Setenv("WAHA_API_KEY", "secret")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("REDIS_DB", "2")
		t.Setenv("SEND_RATE_PER_SECOND", "0.5")

		cfg, err := load(t.TempDir())

		require.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "http://waha:3000", cfg.WahaAPIURL)
		assert.Equal(t, "secret", cfg.WahaAPIKey)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, 0.5, cfg.SendRatePerSecond)
		assert.True(t, cfg.RedisEnabled())
		assert.True(t, cfg.SendThrottled())
	})

	t.Run("success - values from .env file", func(t *testing.T) {
		dir := t.TempDir()
		content := "WAHA_API_KEY = \"from-file\"\nWEBHOOK_HMAC_KEY = \"hmac\"\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

		cfg, err := load(dir)

		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.WahaAPIKey)
		assert.Equal(t, "hmac", cfg.WebhookHMACKey)
	})

	t.Run("error - malformed .env file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("not = [toml"), 0o600))

		_, err := load(dir)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})
}
