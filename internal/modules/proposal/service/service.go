package proposal

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	book "sourcingsprints.com/bookclub/internal/modules/book/service"
	notifService "sourcingsprints.com/bookclub/internal/modules/notification/service"
	userRepo "sourcingsprints.com/bookclub/internal/modules/profile/repository"
	proposalDto "sourcingsprints.com/bookclub/internal/modules/proposal/dto"
	proposalRepo "sourcingsprints.com/bookclub/internal/modules/proposal/repository"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type ProposalService interface {
	Propose(ctx context.Context, proposerID uuid.UUID, req proposalDto.ProposeRequest) (*entity.Proposal, error)
	ToggleVote(ctx context.Context, proposalID, userID uuid.UUID) (*proposalDto.ToggleVoteResponse, error)
	Rank(ctx context.Context, userID *uuid.UUID) ([]proposalDto.RankedProposalResponse, error)
	Top(ctx context.Context, n int) ([]proposalDto.RankedProposalResponse, error)
	// Promote creates a Book from the proposal's fields, then deactivates the
	// proposal. If deactivation fails after the book exists, the error wraps
	// apperror.ErrPartialPromotion rather than swallowing the mismatch.
	Promote(ctx context.Context, proposalID uuid.UUID, targetStatus entity.BookStatus) (*entity.Book, error)
	Withdraw(ctx context.Context, proposalID, userID uuid.UUID, isAdmin bool) error
}

type proposalService struct {
	repo                proposalRepo.ProposalRepository
	bookService         book.BookService
	notificationService notifService.NotificationService
	userRepo            userRepo.UserRepository
}

func NewProposalService(repo proposalRepo.ProposalRepository, bookService book.BookService, notificationService notifService.NotificationService, userRepo userRepo.UserRepository) ProposalService {
	return &proposalService{
		repo:                repo,
		bookService:         bookService,
		notificationService: notificationService,
		userRepo:            userRepo,
	}
}

func (s *proposalService) Propose(ctx context.Context, proposerID uuid.UUID, req proposalDto.ProposeRequest) (*entity.Proposal, error) {
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	if title == "" || author == "" {
		return nil, apperror.ErrInvalidInput
	}

	// Duplicate titles are allowed: two people can pitch the same book.
	proposal := &entity.Proposal{
		Title:      title,
		Author:     author,
		CoverURL:   req.CoverURL,
		WhyRead:    req.WhyRead,
		ProposedBy: proposerID,
		IsActive:   true,
	}
	if err := s.repo.Create(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *proposalService) ToggleVote(ctx context.Context, proposalID, userID uuid.UUID) (*proposalDto.ToggleVoteResponse, error) {
	proposal, err := s.repo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if !proposal.IsActive {
		return nil, apperror.ErrNotFound
	}

	voted, err := s.repo.ToggleVote(ctx, proposalID, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountVotes(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	return &proposalDto.ToggleVoteResponse{Voted: voted, VoteCount: count}, nil
}

func (s *proposalService) Rank(ctx context.Context, userID *uuid.UUID) ([]proposalDto.RankedProposalResponse, error) {
	rows, err := s.repo.RankActive(ctx)
	if err != nil {
		return nil, err
	}

	voted := map[uuid.UUID]bool{}
	if userID != nil {
		ids, err := s.repo.FindVotedProposalIDs(ctx, *userID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			voted[id] = true
		}
	}

	resp := make([]proposalDto.RankedProposalResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, proposalDto.RankedProposalResponse{
			ID:        row.ID,
			Title:     row.Title,
			Author:    row.Author,
			CoverURL:  row.CoverURL,
			WhyRead:   row.WhyRead,
			Proposer:  row.ProposedBy,
			CreatedAt: row.CreatedAt,
			VoteCount: row.VoteCount,
			Voted:     voted[row.ID],
		})
	}
	return resp, nil
}

// Top serves the home feed's "up next" teaser.
func (s *proposalService) Top(ctx context.Context, n int) ([]proposalDto.RankedProposalResponse, error) {
	ranked, err := s.Rank(ctx, nil)
	if err != nil {
		return nil, err
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}

func (s *proposalService) Promote(ctx context.Context, proposalID uuid.UUID, targetStatus entity.BookStatus) (*entity.Book, error) {
	proposal, err := s.repo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if !proposal.IsActive {
		return nil, apperror.ErrNotFound
	}

	switch targetStatus {
	case entity.BookStatusCurrent, entity.BookStatusRead:
	default:
		return nil, apperror.ErrInvalidInput
	}

	created, err := s.bookService.CreateFromProposal(ctx, proposal, targetStatus)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Deactivate(ctx, proposalID); err != nil {
		return created, fmt.Errorf("%w: %v", apperror.ErrPartialPromotion, err)
	}

	if s.notificationService != nil {
		text := fmt.Sprintf("Your proposal %q was promoted to the bookshelf", proposal.Title)
		err := s.notificationService.Notify(ctx, proposal.ProposedBy, entity.NotificationPromoted, text, notifService.Links{BookID: &created.ID})
		if err != nil {
			log.Printf("Failed to notify proposer %s: %v", proposal.ProposedBy, err)
		}

		if targetStatus == entity.BookStatusCurrent {
			s.announceNewBook(ctx, created, proposal.ProposedBy)
		}
	}

	return created, nil
}

// announceNewBook tells the rest of the team what they are reading next.
// The proposer already got the promotion notification.
func (s *proposalService) announceNewBook(ctx context.Context, created *entity.Book, proposerID uuid.UUID) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		log.Printf("Failed to list profiles for announcement: %v", err)
		return
	}

	text := fmt.Sprintf("We're now reading %q", created.Title)
	for _, u := range users {
		if u.ID == proposerID {
			continue
		}
		err := s.notificationService.Notify(ctx, u.ID, entity.NotificationNewBook, text, notifService.Links{BookID: &created.ID})
		if err != nil {
			log.Printf("Failed to notify %s about new book: %v", u.ID, err)
		}
	}
}

func (s *proposalService) Withdraw(ctx context.Context, proposalID, userID uuid.UUID, isAdmin bool) error {
	proposal, err := s.repo.FindByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if proposal.ProposedBy != userID && !isAdmin {
		return apperror.ErrForbidden
	}
	return s.repo.Deactivate(ctx, proposalID)
}
