package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "https://user.live.boltsvc.net", cfg.Provider.BaseURL)
	assert.Equal(t, "user.live.boltsvc.net", cfg.Provider.APIHost)
	assert.Equal(t, "3240", cfg.Provider.VersionCode)
	assert.Equal(t, "snake", cfg.Deeplink.Scheme)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("DEEPLINK_SCHEME", "camel")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.Server.Port)
	assert.Equal(t, "camel", cfg.Deeplink.Scheme)
	assert.Equal(t, "5s", cfg.Provider.Timeout.String())
}

func TestLoad_RejectsUnknownDeeplinkScheme(t *testing.T) {
	t.Setenv("DEEPLINK_SCHEME", "kebab")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RateLimitRequiresRedis(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("REDIS_HOST", "")

	_, err := Load()
	assert.Error(t, err)
}
