package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"sourcingsprints.com/bookclub/internal/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByReview(ctx context.Context, reviewID uuid.UUID) ([]entity.Comment, error)
	// CreateMentions inserts mention rows with ON CONFLICT DO NOTHING so the
	// same user mentioned twice in one comment still yields one row.
	CreateMentions(ctx context.Context, mentions []entity.Mention) error
	FindMentionsByComment(ctx context.Context, commentID uuid.UUID) ([]entity.Mention, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByReview(ctx context.Context, reviewID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("review_id = ?", reviewID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CreateMentions(ctx context.Context, mentions []entity.Mention) error {
	if len(mentions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&mentions).Error
}

func (r *commentRepository) FindMentionsByComment(ctx context.Context, commentID uuid.UUID) ([]entity.Mention, error) {
	var mentions []entity.Mention
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Find(&mentions).Error
	return mentions, err
}
