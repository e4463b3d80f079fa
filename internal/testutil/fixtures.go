package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assetvault/internal/identity"
	"assetvault/internal/models"
	"assetvault/internal/storage"
)

// TestPassword is the plaintext password of users created by CreateTestUser.
const TestPassword = "password123"

// BaseKey is the storage base key used by test binders.
const BaseKey = "personal_assets"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     "Test User",
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// NewTestBinder returns a binder over an in-memory KV. Seeding is off so
// collections start empty.
func NewTestBinder(t *testing.T) (*identity.Binder, *storage.MemoryKV) {
	t.Helper()
	kv := storage.NewMemoryKV()
	return identity.NewBinder(kv, BaseKey, false), kv
}

// NewDraft returns a minimal valid asset draft with a unique name.
func NewDraft(category string, price float64) models.AssetDraft {
	return models.AssetDraft{
		Name:          fmt.Sprintf("Asset %d", nextID()),
		Category:      category,
		PurchasePrice: models.Amount(price),
	}
}
