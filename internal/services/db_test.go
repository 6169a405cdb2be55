package services

import (
	"fmt"
	"path/filepath"
	"testing"

	"gtdflow/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testUserSeq int

// newTestDB opens a throwaway sqlite database migrated to the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gtdflow_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.StatusHistoryEntry{},
		&models.TimeEntry{},
		&models.Note{},
		&models.Journal{},
		&models.Tag{},
		&models.SavedSearch{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	testUserSeq++
	user := models.User{
		Email:       fmt.Sprintf("user%d@example.com", testUserSeq),
		DisplayName: "Test User",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}
