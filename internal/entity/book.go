package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookStatus string

const (
	BookStatusCurrent  BookStatus = "Current"
	BookStatusRead     BookStatus = "Read"
	BookStatusArchived BookStatus = "Archived"
)

// Book is never hard-deleted; Archived is the soft-delete state.
// At most one row may hold status=Current at any time; the book service
// enforces that inside a single transaction.
type Book struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Author    string     `gorm:"size:255;not null" json:"author"`
	CoverURL  *string    `gorm:"type:text" json:"cover_url,omitempty"`
	Status    BookStatus `gorm:"size:20;not null;index" json:"status"`
	DateAdded time.Time  `gorm:"autoCreateTime" json:"date_added"`
}

func (b *Book) TableName() string {
	return "books"
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID, err = uuid.NewV7()
	}
	return
}
