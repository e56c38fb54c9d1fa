package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sourcingsprints.com/bookclub/internal/entity"
)

// ReviewerRow is one leaderboard row for reviewers.
type ReviewerRow struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	ReviewCount int64     `json:"review_count"`
}

// RaterRow is one leaderboard row for how generously a person rates.
type RaterRow struct {
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Average     float64   `json:"average"`
	RatingCount int64     `json:"rating_count"`
}

type StatRepository interface {
	CountBooksRead(ctx context.Context) (int64, error)
	// TeamAverage is the average over every rated review in the club; nil
	// when nobody has rated anything yet.
	TeamAverage(ctx context.Context) (*float64, error)
	TopReviewers(ctx context.Context, limit int) ([]ReviewerRow, error)
	// ReviewerAverages ranks reviewers by the average rating they give,
	// requiring at least minRatings ratings per person so one enthusiastic 5
	// cannot top the board.
	ReviewerAverages(ctx context.Context, limit, minRatings int, ascending bool) ([]RaterRow, error)
}

type statRepository struct {
	db *gorm.DB
}

func NewStatRepository(db *gorm.DB) StatRepository {
	return &statRepository{db: db}
}

func (r *statRepository) CountBooksRead(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Book{}).
		Where("status = ?", entity.BookStatusRead).
		Count(&count).Error
	return count, err
}

func (r *statRepository) TeamAverage(ctx context.Context) (*float64, error) {
	var row struct {
		Average *float64
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("AVG(rating) AS average").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.Average, nil
}

func (r *statRepository) TopReviewers(ctx context.Context, limit int) ([]ReviewerRow, error) {
	var rows []ReviewerRow
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("profiles.id AS user_id, profiles.display_name, COUNT(reviews.id) AS review_count").
		Joins("JOIN profiles ON profiles.id = reviews.user_id").
		Group("profiles.id, profiles.display_name").
		Order("review_count DESC, profiles.display_name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *statRepository) ReviewerAverages(ctx context.Context, limit, minRatings int, ascending bool) ([]RaterRow, error) {
	direction := "DESC"
	if ascending {
		direction = "ASC"
	}

	var rows []RaterRow
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("profiles.id AS user_id, profiles.display_name, AVG(reviews.rating) AS average, COUNT(reviews.rating) AS rating_count").
		Joins("JOIN profiles ON profiles.id = reviews.user_id").
		Where("reviews.rating IS NOT NULL").
		Group("profiles.id, profiles.display_name").
		Having("COUNT(reviews.rating) >= ?", minRatings).
		Order("average " + direction).
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
