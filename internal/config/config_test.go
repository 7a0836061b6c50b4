package config

import (
	"testing"
	"time"

	"go-gudang/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecrets(t *testing.T) {
	t.Setenv("SECRET_KEY", "signing")
	t.Setenv("OWNER_SECRET", "owner")
	t.Setenv("RESET_SECRET", "reset")
}

func TestLoadDefaults(t *testing.T) {
	setSecrets(t)
	// empty variables count as unset
	for _, key := range []string{"PORT", "TOKEN_TTL", "DB_DRIVER", "DB_LOG_LEVEL", "RABBITMQ_URL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "warn", cfg.Database.LogLevel)
	assert.Empty(t, cfg.RabbitMQURL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	setSecrets(t)
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "gudang-test.db")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "gudang-test.db", cfg.Database.DSN)
	assert.True(t, cfg.LogPretty)
}

func TestLoadInvalidTTL(t *testing.T) {
	t.Setenv("TOKEN_TTL", "forever")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateMissingSecrets(t *testing.T) {
	cfg := &Config{SecretKey: "signing"}

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrMissingSecret)
	assert.Contains(t, err.Error(), "OWNER_SECRET, RESET_SECRET")
}

func TestValidateSharedSecret(t *testing.T) {
	cfg := &Config{SecretKey: "signing", OwnerSecret: "same", ResetSecret: "same"}

	assert.ErrorIs(t, cfg.Validate(), ErrSharedSecret)
}
