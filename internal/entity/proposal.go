package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Proposal is a candidate book on the Up Next board. Immutable after
// creation except for the active flag, which is cleared on promotion
// or withdrawal. Duplicate titles are allowed.
type Proposal struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Author     string    `gorm:"size:255;not null" json:"author"`
	CoverURL   *string   `gorm:"type:text" json:"cover_url,omitempty"`
	WhyRead    *string   `gorm:"type:text" json:"why_read,omitempty"`
	ProposedBy uuid.UUID `gorm:"type:uuid;not null" json:"proposed_by"`
	Proposer   User      `gorm:"foreignKey:ProposedBy;constraint:OnDelete:CASCADE" json:"-"`
	IsActive   bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Proposal) TableName() string {
	return "book_proposals"
}

func (p *Proposal) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

// Vote is at most one per (proposal, user); the unique index turns a
// concurrent double-toggle into a rejected duplicate instead of two rows.
type Vote struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProposalID uuid.UUID `gorm:"type:uuid;not null;index:idx_votes_unique,unique,priority:1" json:"proposal_id"`
	Proposal   Proposal  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_votes_unique,unique,priority:2" json:"user_id"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (v *Vote) TableName() string {
	return "book_votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID, err = uuid.NewV7()
	}
	return
}
