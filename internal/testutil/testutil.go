// Package testutil provides isolated databases and config for tests.
package testutil

import (
	"regexp"
	"testing"
	"time"

	"go-gudang/internal/config"
	"go-gudang/internal/model"
	"go-gudang/pkg/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// NewDB opens a migrated in-memory sqlite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := unsafeChars.ReplaceAllString(t.Name(), "_")
	db, err := database.Connect(database.Config{
		Driver:   database.DriverSQLite,
		DSN:      "file:" + name + "?mode=memory&cache=shared",
		LogLevel: "silent",
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// Config returns a valid configuration backed by sqlite.
func Config() *config.Config {
	return &config.Config{
		Port:        "0",
		SecretKey:   "test-signing-key",
		OwnerSecret: "owner-secret",
		ResetSecret: "reset-secret",
		TokenTTL:    time.Hour,
		Database:    database.Config{Driver: database.DriverSQLite},
		LogLevel:    "disabled",
	}
}

// CreateUser inserts a user with the given role and password.
func CreateUser(t *testing.T, db *gorm.DB, username, password string, role model.Role) *model.User {
	t.Helper()

	user := &model.User{Username: username, NamaToko: "Toko " + username, Role: role}
	require.NoError(t, user.SetPassword(password))
	require.NoError(t, db.Create(user).Error)
	return user
}
