package reaction

import (
	"context"

	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	reactionDto "sourcingsprints.com/bookclub/internal/modules/reaction/dto"
	reactionRepo "sourcingsprints.com/bookclub/internal/modules/reaction/repository"
	reviewRepo "sourcingsprints.com/bookclub/internal/modules/review/repository"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type ReactionService interface {
	// Toggle flips the caller's reaction of the given type on a review.
	// Toggling twice lands back on the starting state.
	Toggle(ctx context.Context, reviewID, userID uuid.UUID, reactionType entity.ReactionType) (*reactionDto.ToggleReactionResponse, error)
	Summary(ctx context.Context, reviewID, userID uuid.UUID) (*reactionDto.ReactionSummaryResponse, error)
}

type reactionService struct {
	repo       reactionRepo.ReactionRepository
	reviewRepo reviewRepo.ReviewRepository
}

func NewReactionService(repo reactionRepo.ReactionRepository, reviewRepo reviewRepo.ReviewRepository) ReactionService {
	return &reactionService{repo: repo, reviewRepo: reviewRepo}
}

func validReactionType(t entity.ReactionType) bool {
	switch t {
	case entity.ReactionLike, entity.ReactionHelpful, entity.ReactionFunny:
		return true
	}
	return false
}

func (s *reactionService) Toggle(ctx context.Context, reviewID, userID uuid.UUID, reactionType entity.ReactionType) (*reactionDto.ToggleReactionResponse, error) {
	if !validReactionType(reactionType) {
		return nil, apperror.ErrInvalidInput
	}
	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}

	reacted, err := s.repo.Toggle(ctx, reviewID, userID, reactionType)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountsByType(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	return &reactionDto.ToggleReactionResponse{Reacted: reacted, Counts: counts}, nil
}

func (s *reactionService) Summary(ctx context.Context, reviewID, userID uuid.UUID) (*reactionDto.ReactionSummaryResponse, error) {
	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}

	counts, err := s.repo.CountsByType(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	mine, err := s.repo.FindUserTypes(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}
	return &reactionDto.ReactionSummaryResponse{Counts: counts, Mine: mine}, nil
}
