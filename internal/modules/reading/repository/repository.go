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

type ReadingRepository interface {
	// Upsert writes the one status per (book,user): insert, or on conflict
	// overwrite the status in place.
	Upsert(ctx context.Context, status *entity.ReadingStatus) error
	FindByBookAndUser(ctx context.Context, bookID, userID uuid.UUID) (*entity.ReadingStatus, error)
	FindByBook(ctx context.Context, bookID uuid.UUID) ([]entity.ReadingStatus, error)
}

type readingRepository struct {
	db *gorm.DB
}

func NewReadingRepository(db *gorm.DB) ReadingRepository {
	return &readingRepository{db: db}
}

func (r *readingRepository) Upsert(ctx context.Context, status *entity.ReadingStatus) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "book_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
		}).
		Create(status).Error
}

func (r *readingRepository) FindByBookAndUser(ctx context.Context, bookID, userID uuid.UUID) (*entity.ReadingStatus, error) {
	var status entity.ReadingStatus
	if err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (r *readingRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]entity.ReadingStatus, error) {
	var statuses []entity.ReadingStatus
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("book_id = ?", bookID).
		Order("updated_at desc").
		Find(&statuses).Error
	return statuses, err
}
