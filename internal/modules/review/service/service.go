package review

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	bookRepo "sourcingsprints.com/bookclub/internal/modules/book/repository"
	reviewDto "sourcingsprints.com/bookclub/internal/modules/review/dto"
	reviewRepo "sourcingsprints.com/bookclub/internal/modules/review/repository"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type ReviewService interface {
	// Upsert writes the caller's one review for the book. A second call from
	// the same user replaces rating and thoughts instead of adding a row.
	Upsert(ctx context.Context, bookID, userID uuid.UUID, req reviewDto.UpsertReviewRequest) (*entity.Review, error)
	GetForBook(ctx context.Context, bookID uuid.UUID) (*reviewDto.BookReviewsResponse, error)
	GetMine(ctx context.Context, bookID, userID uuid.UUID) (*entity.Review, error)
	Aggregate(ctx context.Context, bookID uuid.UUID) (*reviewRepo.Aggregate, error)
}

type reviewService struct {
	repo     reviewRepo.ReviewRepository
	bookRepo bookRepo.BookRepository
}

func NewReviewService(repo reviewRepo.ReviewRepository, bookRepo bookRepo.BookRepository) ReviewService {
	return &reviewService{repo: repo, bookRepo: bookRepo}
}

func (s *reviewService) Upsert(ctx context.Context, bookID, userID uuid.UUID, req reviewDto.UpsertReviewRequest) (*entity.Review, error) {
	thoughts := strings.TrimSpace(req.Thoughts)
	if thoughts == "" {
		return nil, apperror.ErrInvalidInput
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		return nil, apperror.ErrInvalidInput
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		BookID:   bookID,
		UserID:   userID,
		Rating:   req.Rating,
		Thoughts: thoughts,
	}
	if err := s.repo.Upsert(ctx, review); err != nil {
		return nil, err
	}

	// On the update path the generated ID above never lands; read back the
	// row that actually holds the data.
	return s.repo.FindByBookAndUser(ctx, bookID, userID)
}

func (s *reviewService) GetForBook(ctx context.Context, bookID uuid.UUID) (*reviewDto.BookReviewsResponse, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	reviews, err := s.repo.FindByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	agg, err := s.repo.ComputeAggregate(ctx, bookID)
	if err != nil {
		return nil, err
	}

	resp := &reviewDto.BookReviewsResponse{
		Count:   agg.Count,
		Average: agg.Average,
		Reviews: make([]reviewDto.ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, reviewDto.ReviewResponse{
			ID:           r.ID,
			BookID:       r.BookID,
			UserID:       r.UserID,
			ReviewerName: r.User.DisplayName,
			Rating:       r.Rating,
			Thoughts:     r.Thoughts,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return resp, nil
}

func (s *reviewService) GetMine(ctx context.Context, bookID, userID uuid.UUID) (*entity.Review, error) {
	return s.repo.FindByBookAndUser(ctx, bookID, userID)
}

func (s *reviewService) Aggregate(ctx context.Context, bookID uuid.UUID) (*reviewRepo.Aggregate, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repo.ComputeAggregate(ctx, bookID)
}
