// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"testing"

	"gorm.io/gorm"

	"assetvault/internal/database"
)

// SetupTestDB opens a private in-memory SQLite database through the same
// manager and schema migration the server uses.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	m, err := database.NewManager(&database.Config{
		Driver: database.DriverSQLite,
		Path:   fmt.Sprintf("file:testutil%d?mode=memory&cache=shared", nextID()),
		Quiet:  true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := m.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return m.DB()
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
