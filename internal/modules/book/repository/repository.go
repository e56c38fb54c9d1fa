package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sourcingsprints.com/bookclub/internal/entity"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	// CreateAsCurrent demotes every Current book to Read and inserts the new
	// book as Current, all inside one transaction.
	CreateAsCurrent(ctx context.Context, book *entity.Book) error
	// SetCurrent demotes every Current book to Read and promotes id to
	// Current, all inside one transaction. Two separate round-trips here can
	// leave zero or two Current rows under concurrent callers.
	SetCurrent(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookStatus) error
	UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	FindByStatuses(ctx context.Context, statuses []entity.BookStatus) ([]entity.Book, error)
	FindAll(ctx context.Context) ([]entity.Book, error)
	CountByStatus(ctx context.Context, status entity.BookStatus) (int64, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) CreateAsCurrent(ctx context.Context, book *entity.Book) error {
	book.Status = entity.BookStatusCurrent
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Book{}).
			Where("status = ?", entity.BookStatusCurrent).
			Update("status", entity.BookStatusRead).Error; err != nil {
			return err
		}
		return tx.Create(book).Error
	})
}

func (r *bookRepository) SetCurrent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Book{}).
			Where("status = ? AND id <> ?", entity.BookStatusCurrent, id).
			Update("status", entity.BookStatusRead).Error; err != nil {
			return err
		}

		res := tx.Model(&entity.Book{}).
			Where("id = ?", id).
			Update("status", entity.BookStatusCurrent)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrNotFound
		}
		return nil
	})
}

func (r *bookRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookStatus) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Book{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *bookRepository) UpdateCoverURL(ctx context.Context, id uuid.UUID, coverURL string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Book{}).
		Where("id = ?", id).
		Update("cover_url", coverURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	var book entity.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByStatuses(ctx context.Context, statuses []entity.BookStatus) ([]entity.Book, error) {
	var books []entity.Book
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("date_added desc").
		Find(&books).Error
	return books, err
}

func (r *bookRepository) FindAll(ctx context.Context) ([]entity.Book, error) {
	var books []entity.Book
	err := r.db.WithContext(ctx).Order("date_added desc").Find(&books).Error
	return books, err
}

func (r *bookRepository) CountByStatus(ctx context.Context, status entity.BookStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Book{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
