package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validConfig() *Config {
	return &Config{
		Port:       "3000",
		JWTSecret:  "a-development-secret-that-is-long-enough!",
		BcryptCost: bcrypt.DefaultCost,
		DBPassword: "password",
		Env:        "development",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid development config", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Port = ""
		assert.ErrorContains(t, cfg.Validate(), "PORT")
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWTSecret = ""
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("bcrypt cost out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.BcryptCost = bcrypt.MaxCost + 1
		assert.ErrorContains(t, cfg.Validate(), "BCRYPT_COST")

		cfg.BcryptCost = bcrypt.MinCost - 1
		assert.ErrorContains(t, cfg.Validate(), "BCRYPT_COST")
	})
}

func TestValidate_ProductionStrictness(t *testing.T) {
	t.Parallel()

	t.Run("default jwt secret rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "your-secret-key-change-in-production"
		cfg.DBPassword = "real-db-password"
		assert.ErrorContains(t, cfg.Validate(), "default value")
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "prod"
		cfg.JWTSecret = "short"
		cfg.DBPassword = "real-db-password"
		assert.ErrorContains(t, cfg.Validate(), "32 characters")
	})

	t.Run("weak db password rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})

	t.Run("strong production config passes", func(t *testing.T) {
		cfg := validConfig()
		cfg.Env = "production"
		cfg.DBPassword = "a-real-database-password"
		cfg.DBSSLMode = "require"
		require.NoError(t, cfg.Validate())
	})
}
