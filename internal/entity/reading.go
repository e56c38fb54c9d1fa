package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReadingStatusValue string

const (
	ReadingIn          ReadingStatusValue = "In"
	ReadingReading     ReadingStatusValue = "Reading"
	ReadingFinished    ReadingStatusValue = "Finished"
	ReadingNotThisTime ReadingStatusValue = "NotThisTime"
)

// ReadingStatus is a personal per-(book, user) flag, upserted in place.
type ReadingStatus struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	BookID    uuid.UUID          `gorm:"type:uuid;not null;index:idx_reading_unique,unique,priority:1" json:"book_id"`
	Book      Book               `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID          `gorm:"type:uuid;not null;index:idx_reading_unique,unique,priority:2" json:"user_id"`
	User      User               `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status    ReadingStatusValue `gorm:"size:20;not null" json:"status"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ReadingStatus) TableName() string {
	return "reading_statuses"
}

func (r *ReadingStatus) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
