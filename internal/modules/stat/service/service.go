package stat

import (
	"context"

	statDto "sourcingsprints.com/bookclub/internal/modules/stat/dto"
	statRepo "sourcingsprints.com/bookclub/internal/modules/stat/repository"
)

const (
	leaderboardSize = 5
	// Reviewers need at least this many ratings to enter the generosity
	// boards.
	minRatingsFloor = 2
)

type StatService interface {
	Dashboard(ctx context.Context) (*statDto.StatsResponse, error)
}

type statService struct {
	repo statRepo.StatRepository
}

func NewStatService(repo statRepo.StatRepository) StatService {
	return &statService{repo: repo}
}

func (s *statService) Dashboard(ctx context.Context) (*statDto.StatsResponse, error) {
	booksRead, err := s.repo.CountBooksRead(ctx)
	if err != nil {
		return nil, err
	}
	teamAverage, err := s.repo.TeamAverage(ctx)
	if err != nil {
		return nil, err
	}
	topReviewers, err := s.repo.TopReviewers(ctx, leaderboardSize)
	if err != nil {
		return nil, err
	}
	generous, err := s.repo.ReviewerAverages(ctx, leaderboardSize, minRatingsFloor, false)
	if err != nil {
		return nil, err
	}
	critical, err := s.repo.ReviewerAverages(ctx, leaderboardSize, minRatingsFloor, true)
	if err != nil {
		return nil, err
	}

	return &statDto.StatsResponse{
		BooksRead:    booksRead,
		TeamAverage:  teamAverage,
		TopReviewers: topReviewers,
		MostGenerous: generous,
		MostCritical: critical,
	}, nil
}
