package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *Config {
	return &Config{
		Port:          "8480",
		Env:           "development",
		AdminPass:     "a-real-password",
		SessionSecret: "a-session-secret-at-least-32-chars-long",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing admin pass", func(c *Config) { c.AdminPass = "" }, true},
		{"missing session secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"default admin pass in development", func(c *Config) { c.AdminPass = DefaultAdminPass }, false},
		{"default admin pass in production", func(c *Config) {
			c.Env = "production"
			c.AdminPass = DefaultAdminPass
		}, true},
		{"default session secret in production", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = "folio-session-secret-change-in-production"
		}, true},
		{"short session secret in production", func(c *Config) {
			c.Env = "prod"
			c.SessionSecret = "too-short"
		}, true},
		{"hardened production config", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	defer viper.Reset()

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8480", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, DefaultAdminPass, cfg.AdminPass)
	assert.Equal(t, "folio-covers", cfg.BlobBucket)
	assert.False(t, cfg.TraceEnabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	defer os.Unsetenv("ADMIN_PASS")
	defer os.Unsetenv("PORT")
	defer viper.Reset()

	os.Setenv("ADMIN_PASS", "from-env")
	os.Setenv("PORT", "9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AdminPass)
	assert.Equal(t, "9000", cfg.Port)
}
