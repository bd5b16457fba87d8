package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() Config {
	return Config{
		PostgresUser:     "app",
		PostgresPassword: "pw",
		PostgresDB:       "menucraft",
		PostgresHost:     "localhost",
		PostgresPort:     5432,
		PostgresSSLMode:  "disable",
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := baseConfig()
	assert.Equal(t,
		"host=localhost port=5432 user=app password=pw dbname=menucraft sslmode=disable",
		cfg.PostgresDSN())
}

func TestPostgresDSN_DatabaseURLWins(t *testing.T) {
	cfg := baseConfig()
	cfg.DatabaseURL = "postgres://app:pw@db.internal:5432/menucraft"

	assert.Equal(t, cfg.DatabaseURL, cfg.PostgresDSN())
}

func TestLoad(t *testing.T) {
	setAll := func(t *testing.T) {
		t.Setenv("PORT", "5001")
		t.Setenv("POSTGRES_USER", "app")
		t.Setenv("POSTGRES_PASSWORD", "pw")
		t.Setenv("POSTGRES_DB", "menucraft")
		t.Setenv("POSTGRES_HOST", "localhost")
		t.Setenv("POSTGRES_PORT", "5432")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("GO_ENV", "dev")
		t.Setenv("POSTGRES_SSLMODE", "")
		t.Setenv("DATABASE_URL", "")
	}

	t.Run("ok", func(t *testing.T) {
		setAll(t)

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "5001", cfg.Port)
		assert.Equal(t, 5432, cfg.PostgresPort)
		// SSLMODE未指定はdisable
		assert.Equal(t, "disable", cfg.PostgresSSLMode)
	})

	t.Run("missing secret", func(t *testing.T) {
		setAll(t)
		t.Setenv("JWT_SECRET", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("bad port", func(t *testing.T) {
		setAll(t)
		t.Setenv("POSTGRES_PORT", "abc")

		_, err := Load()
		assert.Error(t, err)
	})
}
