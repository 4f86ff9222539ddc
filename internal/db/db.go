// Package db opens and migrates the SQLite database backing the optional
// gorm store variant.
package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/linguo-app/linguo-auth/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultDSN keeps the database in memory so nothing persists across restarts.
const DefaultDSN = "file::memory:?cache=shared"

// Open connects to SQLite using the given DSN, falling back to DefaultDSN.
func Open(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(BuildSQLiteDSN(dsn)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open: %w", err)
	}
	return conn, nil
}

// Migrate applies the schema for the store models.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errAutoMigrate := conn.AutoMigrate(
		&models.User{},
		&models.OTPEntry{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}
	return nil
}

// BuildSQLiteDSN normalizes a SQLite DSN, adding the file: prefix for bare paths.
func BuildSQLiteDSN(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return DefaultDSN
	}
	if !strings.HasPrefix(strings.ToLower(dsn), "file:") && dsn != ":memory:" {
		dsn = "file:" + dsn
	}
	return dsn
}
