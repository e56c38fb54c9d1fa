package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"sourcingsprints.com/bookclub/internal/entity"
)

// NewDB opens an isolated in-memory database with the full schema, including
// the unique indexes the toggle and upsert paths rely on.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Book{},
		&entity.Proposal{},
		&entity.Vote{},
		&entity.Review{},
		&entity.Reaction{},
		&entity.Comment{},
		&entity.Mention{},
		&entity.ReadingStatus{},
		&entity.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// NewUser inserts a profile and returns it.
func NewUser(t *testing.T, db *gorm.DB, email, displayName string) *entity.User {
	t.Helper()

	user := &entity.User{Email: email, DisplayName: displayName}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

// NewBook inserts a book with the given status and returns it.
func NewBook(t *testing.T, db *gorm.DB, title string, status entity.BookStatus) *entity.Book {
	t.Helper()

	book := &entity.Book{Title: title, Author: "Test Author", Status: status}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("failed to create book %s: %v", title, err)
	}
	return book
}
