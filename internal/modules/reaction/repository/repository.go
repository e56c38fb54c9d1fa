package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"sourcingsprints.com/bookclub/internal/entity"
)

type ReactionRepository interface {
	// Toggle removes the (review,user,type) reaction if present, else inserts
	// one with ON CONFLICT DO NOTHING so racing duplicates collapse into a
	// single row. Returns whether the reaction is present after the call.
	Toggle(ctx context.Context, reviewID, userID uuid.UUID, reactionType entity.ReactionType) (bool, error)
	// CountsByType recounts from raw reaction rows; no cached tallies.
	CountsByType(ctx context.Context, reviewID uuid.UUID) (map[entity.ReactionType]int64, error)
	FindUserTypes(ctx context.Context, reviewID, userID uuid.UUID) ([]entity.ReactionType, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Toggle(ctx context.Context, reviewID, userID uuid.UUID, reactionType entity.ReactionType) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ? AND type = ?", reviewID, userID, reactionType).
		Delete(&entity.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	reaction := &entity.Reaction{ReviewID: reviewID, UserID: userID, Type: reactionType}
	res = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(reaction)
	if res.Error != nil {
		return false, res.Error
	}
	return true, nil
}

func (r *reactionRepository) CountsByType(ctx context.Context, reviewID uuid.UUID) (map[entity.ReactionType]int64, error) {
	var rows []struct {
		Type  entity.ReactionType
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Reaction{}).
		Select("type, COUNT(*) AS count").
		Where("review_id = ?", reviewID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[entity.ReactionType]int64{
		entity.ReactionLike:    0,
		entity.ReactionHelpful: 0,
		entity.ReactionFunny:   0,
	}
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

func (r *reactionRepository) FindUserTypes(ctx context.Context, reviewID, userID uuid.UUID) ([]entity.ReactionType, error) {
	var types []entity.ReactionType
	err := r.db.WithContext(ctx).
		Model(&entity.Reaction{}).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Pluck("type", &types).Error
	return types, err
}
