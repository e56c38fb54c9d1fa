package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"sourcingsprints.com/bookclub/internal/entity"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	// FindByDisplayNames matches lowercased whole display names. Used by
	// mention resolution; a prefix is not a match.
	FindByDisplayNames(ctx context.Context, lowered []string) ([]entity.User, error)
	SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Order("display_name asc").Find(&users).Error
	return users, err
}

func (r *userRepository) FindByDisplayNames(ctx context.Context, lowered []string) ([]entity.User, error) {
	if len(lowered) == 0 {
		return nil, nil
	}
	var users []entity.User
	err := r.db.WithContext(ctx).
		Where("LOWER(display_name) IN ?", lowered).
		Find(&users).Error
	return users, err
}

func (r *userRepository) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) error {
	res := r.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Update("is_admin", isAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
