package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationMention  = "mention"
	NotificationNewBook  = "new_book"
	NotificationPromoted = "promoted"
)

type Notification struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	RecipientID uuid.UUID  `gorm:"type:uuid;not null;index" json:"recipient_id"`
	Recipient   User       `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	Type        string     `gorm:"size:50;not null" json:"type"`
	Text        string     `gorm:"type:text;not null" json:"text"`
	IsRead      bool       `gorm:"not null;default:false" json:"is_read"`
	BookID      *uuid.UUID `gorm:"type:uuid" json:"book_id,omitempty"`
	ReviewID    *uuid.UUID `gorm:"type:uuid" json:"review_id,omitempty"`
	CommentID   *uuid.UUID `gorm:"type:uuid" json:"comment_id,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}
