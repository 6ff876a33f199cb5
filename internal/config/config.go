package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Deeplink  DeeplinkConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	NewRelic  NewRelicConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string
	Env  string
	Host string
}

// ProviderConfig points at the ride provider's mobile-client API. The sentry
// and release values identify the official app build the request shapes were
// captured from and should only change together with a re-capture.
type ProviderConfig struct {
	BaseURL         string
	APIHost         string
	SentryPublicKey string
	ReleasePackage  string
	VersionCode     string
	Timeout         time.Duration
	RequestLogDir   string
}

// DeeplinkConfig selects the link-service parameter scheme and integration
// credential. Which pair is correct depends on what is registered with the
// provider's link service; both observed schemes are supported.
type DeeplinkConfig struct {
	Scheme      string
	ClientID    string
	OneLinkBase string
	AppScheme   string
}

type RedisConfig struct {
	Host        string
	Port        string
	Password    string
	DB          int
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type RateLimitConfig struct {
	Enabled        bool
	RequestsPerMin int
	SearchPerMin   int
}

type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "3000"),
			Env:  getEnv("SERVER_ENV", "development"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Provider: ProviderConfig{
			BaseURL:         getEnv("PROVIDER_BASE_URL", "https://user.live.boltsvc.net"),
			APIHost:         getEnv("PROVIDER_API_HOST", "user.live.boltsvc.net"),
			SentryPublicKey: getEnv("PROVIDER_SENTRY_PUBLIC_KEY", "fb5f34fc26a081ff4100b68d3c9c1a42"),
			ReleasePackage:  getEnv("PROVIDER_RELEASE_PACKAGE", "ee.mtakso.client"),
			VersionCode:     getEnv("PROVIDER_VERSION_CODE", "3240"),
			Timeout:         time.Duration(getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 30)) * time.Second,
			RequestLogDir:   getEnv("PROVIDER_REQUEST_LOG_DIR", ""),
		},
		Deeplink: DeeplinkConfig{
			Scheme:      getEnv("DEEPLINK_SCHEME", "snake"),
			ClientID:    getEnv("DEEPLINK_CLIENT_ID", ""),
			OneLinkBase: getEnv("DEEPLINK_ONELINK_BASE", ""),
			AppScheme:   getEnv("DEEPLINK_APP_SCHEME", ""),
		},
		Redis: RedisConfig{
			Host:        getEnv("REDIS_HOST", ""),
			Port:        getEnv("REDIS_PORT", "6379"),
			Password:    getEnv("REDIS_PASSWORD", ""),
			DB:          getEnvAsInt("REDIS_DB", 0),
			DialTimeout: 5 * time.Second,
			ReadTimeout: 3 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Enabled:        getEnvAsBool("RATE_LIMIT_ENABLED", false),
			RequestsPerMin: getEnvAsInt("RATE_LIMIT_GENERAL_PER_MINUTE", 100),
			SearchPerMin:   getEnvAsInt("RATE_LIMIT_SEARCH_PER_MINUTE", 20),
		},
		NewRelic: NewRelicConfig{
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			AppName:    getEnv("NEW_RELIC_APP_NAME", "OneRide-Gateway"),
			Enabled:    getEnvAsBool("NEW_RELIC_ENABLED", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("PROVIDER_BASE_URL is required")
	}
	if s := c.Deeplink.Scheme; s != "snake" && s != "camel" {
		return fmt.Errorf("DEEPLINK_SCHEME must be snake or camel, got %q", s)
	}
	if c.RateLimit.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required when rate limiting is enabled")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
