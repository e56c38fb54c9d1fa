package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"sourcingsprints.com/bookclub/internal/entity"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

// RankedProposal is one row of the recomputed ranking. Never persisted.
type RankedProposal struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	CoverURL   *string    `json:"cover_url"`
	WhyRead    *string    `json:"why_read"`
	ProposedBy uuid.UUID  `json:"proposed_by"`
	CreatedAt  time.Time  `json:"created_at"`
	VoteCount  int64      `json:"vote_count"`
}

type ProposalRepository interface {
	Create(ctx context.Context, proposal *entity.Proposal) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	// RankActive recomputes the board from raw vote rows on every call:
	// votes descending, newest proposal first on ties.
	RankActive(ctx context.Context) ([]RankedProposal, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// ToggleVote removes the (proposal,user) vote if present, else inserts
	// one. The insert runs ON CONFLICT DO NOTHING so a concurrent duplicate
	// toggle lands as "already voted", not an error. Returns whether the
	// vote is present after the call.
	ToggleVote(ctx context.Context, proposalID, userID uuid.UUID) (bool, error)
	FindVotedProposalIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	CountVotes(ctx context.Context, proposalID uuid.UUID) (int64, error)
}

type proposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(ctx context.Context, proposal *entity.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var proposal entity.Proposal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&proposal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepository) RankActive(ctx context.Context) ([]RankedProposal, error) {
	var rows []RankedProposal
	err := r.db.WithContext(ctx).
		Table("book_proposals").
		Select("book_proposals.id, book_proposals.title, book_proposals.author, book_proposals.cover_url, book_proposals.why_read, book_proposals.proposed_by, book_proposals.created_at, COUNT(book_votes.id) AS vote_count").
		Joins("LEFT JOIN book_votes ON book_votes.proposal_id = book_proposals.id").
		Where("book_proposals.is_active = ?", true).
		Group("book_proposals.id").
		Order("vote_count DESC, book_proposals.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *proposalRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Proposal{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *proposalRepository) ToggleVote(ctx context.Context, proposalID, userID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("proposal_id = ? AND user_id = ?", proposalID, userID).
		Delete(&entity.Vote{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		// Toggled off.
		return false, nil
	}

	vote := &entity.Vote{ProposalID: proposalID, UserID: userID}
	res = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(vote)
	if res.Error != nil {
		return false, res.Error
	}
	// RowsAffected == 0 means a concurrent toggle inserted first; either way
	// the vote now exists.
	return true, nil
}

func (r *proposalRepository) FindVotedProposalIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.Vote{}).
		Where("user_id = ?", userID).
		Pluck("proposal_id", &ids).Error
	return ids, err
}

func (r *proposalRepository) CountVotes(ctx context.Context, proposalID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Vote{}).
		Where("proposal_id = ?", proposalID).
		Count(&count).Error
	return count, err
}
