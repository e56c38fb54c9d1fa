package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"sourcingsprints.com/bookclub/internal/entity"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

// Aggregate is recomputed from raw review rows on every read. Average is nil
// when no rated reviews exist; it is never zero-filled.
type Aggregate struct {
	Count   int64    `json:"count"`
	Average *float64 `json:"average"`
}

type ReviewRepository interface {
	// Upsert writes the one review per (book,user) in a single statement:
	// insert, or on conflict update rating/thoughts in place.
	Upsert(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBookAndUser(ctx context.Context, bookID, userID uuid.UUID) (*entity.Review, error)
	FindByBook(ctx context.Context, bookID uuid.UUID) ([]entity.Review, error)
	ComputeAggregate(ctx context.Context, bookID uuid.UUID) (*Aggregate, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Upsert(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "book_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "thoughts", "updated_at"}),
		}).
		Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByBookAndUser(ctx context.Context, bookID, userID uuid.UUID) (*entity.Review, error) {
	var review entity.Review
	if err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at desc").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ComputeAggregate(ctx context.Context, bookID uuid.UUID) (*Aggregate, error) {
	var agg Aggregate
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Where("book_id = ?", bookID).
		Scan(&agg).Error
	if err != nil {
		return nil, err
	}
	return &agg, nil
}
