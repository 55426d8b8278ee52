// Package dbtest provides a migrated in-memory database for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lightsmap/core/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh, migrated SQLite database that lives for the test.
// The pool is pinned to one connection so the in-memory schema survives.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(sqlite.Open("file::memory:"), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.ConfigurePool(db, 1, 1); err != nil {
		t.Fatalf("configure pool: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
