package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "Like"
	ReactionHelpful ReactionType = "Helpful"
	ReactionFunny   ReactionType = "Funny"
)

// Review is one per (book, user), upserted in place. Rating is optional:
// nil means an unrated text review, which still counts toward the review
// count but not the average.
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;index:idx_reviews_unique,unique,priority:1" json:"book_id"`
	Book      Book      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_reviews_unique,unique,priority:2" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Rating    *int      `json:"rating,omitempty"`
	Thoughts  string    `gorm:"type:text;not null" json:"thoughts"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

// Reaction is at most one per (review, user, type).
type Reaction struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID  uuid.UUID    `gorm:"type:uuid;not null;index:idx_reactions_unique,unique,priority:1;index:idx_reactions_review" json:"review_id"`
	Review    Review       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index:idx_reactions_unique,unique,priority:2" json:"user_id"`
	User      User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      ReactionType `gorm:"size:20;not null;index:idx_reactions_unique,unique,priority:3" json:"type"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reaction) TableName() string {
	return "review_reactions"
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

// Comment is append-only.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;index" json:"review_id"`
	Review    Review    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Comment) TableName() string {
	return "review_comments"
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// Mention links a comment to a user resolved from an @name token.
// One row per distinct resolved name per comment.
type Mention struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CommentID       uuid.UUID `gorm:"type:uuid;not null;index:idx_mentions_unique,unique,priority:1" json:"comment_id"`
	Comment         Comment   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MentionedUserID uuid.UUID `gorm:"type:uuid;not null;index:idx_mentions_unique,unique,priority:2" json:"mentioned_user_id"`
	MentionedUser   User      `gorm:"foreignKey:MentionedUserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Mention) TableName() string {
	return "comment_mentions"
}

func (m *Mention) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID, err = uuid.NewV7()
	}
	return
}
