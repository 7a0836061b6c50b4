package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go-gudang/pkg/database"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingSecret = errors.New("missing required secret")
	ErrSharedSecret  = errors.New("OWNER_SECRET and RESET_SECRET must differ")
)

// Config is the process configuration, read once at startup and passed
// explicitly to whatever needs it.
type Config struct {
	Port string

	SecretKey   string // JWT signing key
	OwnerSecret string // bootstraps ADMIN accounts on /auth/register
	ResetSecret string // authorizes /admin/reset-password
	TokenTTL    time.Duration

	Database database.Config

	LogLevel  string
	LogPretty bool

	RabbitMQURL string
}

// Load reads an optional .env file and then the environment. It does not
// check secrets; call Validate for processes that serve HTTP.
func Load() (*Config, error) {
	_ = godotenv.Load() // a missing .env is fine, the environment still applies

	v := viper.New()
	v.SetDefault("PORT", "5000")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("DB_DRIVER", database.DriverPostgres)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", v.GetString("TOKEN_TTL"))
	}

	return &Config{
		Port:        v.GetString("PORT"),
		SecretKey:   v.GetString("SECRET_KEY"),
		OwnerSecret: v.GetString("OWNER_SECRET"),
		ResetSecret: v.GetString("RESET_SECRET"),
		TokenTTL:    ttl,
		Database: database.Config{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:      v.GetString("DATABASE_URL"),
			Host:     v.GetString("DB_HOST"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Port:     v.GetString("DB_PORT"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		LogLevel:    v.GetString("LOG_LEVEL"),
		LogPretty:   v.GetBool("LOG_PRETTY"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
	}, nil
}

// Validate ensures every secret the API depends on was provided.
func (c *Config) Validate() error {
	secrets := []struct{ name, value string }{
		{"SECRET_KEY", c.SecretKey},
		{"OWNER_SECRET", c.OwnerSecret},
		{"RESET_SECRET", c.ResetSecret},
	}

	var missing []string
	for _, s := range secrets {
		if strings.TrimSpace(s.value) == "" {
			missing = append(missing, s.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSecret, strings.Join(missing, ", "))
	}
	if c.OwnerSecret == c.ResetSecret {
		return ErrSharedSecret
	}
	return nil
}
