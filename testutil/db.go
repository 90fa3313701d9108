package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/gy-putra/tamago/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an isolated in-memory database with the full schema
// migrated. Each call gets its own named memory DB so parallel tests cannot
// see each other's rows. TranslateError matches the production config so
// unique-constraint violations surface as gorm.ErrDuplicatedKey.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Wishlist{},
	); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

// IntPtr is a convenience for nullable stock columns in test fixtures.
func IntPtr(v int) *int {
	return &v
}
