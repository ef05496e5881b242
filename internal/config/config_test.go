package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:                      "production",
		DBSSLMode:                "require",
		JWTSecret:                "secure-secret-at-least-32-chars-long",
		DBPassword:               "secure-password",
		Port:                     "8080",
		DBConnMaxLifetimeMinutes: 5,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with empty SSL mode", "prod", "", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateProductionSecrets(t *testing.T) {
	c := validConfig()
	c.JWTSecret = "your-secret-key-change-in-production"
	assert.Error(t, c.Validate())

	c = validConfig()
	c.JWTSecret = "short"
	assert.Error(t, c.Validate())

	c = validConfig()
	c.DBPassword = "password"
	assert.Error(t, c.Validate())
}

func TestConfig_ValidateRequiredFields(t *testing.T) {
	c := validConfig()
	c.Port = ""
	assert.Error(t, c.Validate())

	c = validConfig()
	c.DBConnMaxLifetimeMinutes = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.DBMaxOpenConns = -1
	assert.Error(t, c.Validate())
}

func TestLoadConfig_DefaultsAndNormalization(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Reset()

	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "hybrid", c.DBSchemaMode)
	assert.Equal(t, 25, c.DBMaxOpenConns)
	assert.Equal(t, "recipebox", c.DBName)
	assert.False(t, c.IsProduction())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("RECIPEBOX_DOTENV_PROBE=from-file\nRECIPEBOX_DOTENV_KEEP=from-file\n"), 0o600))

	t.Setenv("RECIPEBOX_DOTENV_KEEP", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("RECIPEBOX_DOTENV_PROBE") })

	require.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env"), path))
	assert.Equal(t, "from-file", os.Getenv("RECIPEBOX_DOTENV_PROBE"))
	assert.Equal(t, "from-env", os.Getenv("RECIPEBOX_DOTENV_KEEP"))

	assert.NoError(t, loadDotEnv(filepath.Join(dir, "none.env")))
}
