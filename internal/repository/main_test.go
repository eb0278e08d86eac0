package repository

import (
	"testing"

	"blogify/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database per test so cascade and
// counter behavior is exercised against real SQL.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Blog{}, &models.Comment{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		FullName: "Test User",
		Email:    email,
		Password: "hashed-password",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

func createTestBlog(t *testing.T, db *gorm.DB, authorID uint, status models.BlogStatus) *models.Blog {
	t.Helper()
	blog := &models.Blog{
		Title:       "Test Blog",
		Body:        "Body text",
		CreatedByID: authorID,
		Status:      status,
	}
	if err := db.Create(blog).Error; err != nil {
		t.Fatalf("failed to create test blog: %v", err)
	}
	return blog
}

func createTestComment(t *testing.T, db *gorm.DB, blogID, authorID uint) *models.Comment {
	t.Helper()
	comment := &models.Comment{
		Content:     "A comment",
		BlogID:      blogID,
		CreatedByID: authorID,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create test comment: %v", err)
	}
	return comment
}
