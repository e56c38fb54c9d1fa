package reading

import (
	"context"

	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	bookRepo "sourcingsprints.com/bookclub/internal/modules/book/repository"
	readingDto "sourcingsprints.com/bookclub/internal/modules/reading/dto"
	readingRepo "sourcingsprints.com/bookclub/internal/modules/reading/repository"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type ReadingService interface {
	// SetStatus records the caller's stance on a book, replacing any earlier
	// one. Changing your mind is a feature, not a conflict.
	SetStatus(ctx context.Context, bookID, userID uuid.UUID, status entity.ReadingStatusValue) (*entity.ReadingStatus, error)
	GetMine(ctx context.Context, bookID, userID uuid.UUID) (*entity.ReadingStatus, error)
	WhoIsIn(ctx context.Context, bookID uuid.UUID) (*readingDto.WhoIsInResponse, error)
}

type readingService struct {
	repo     readingRepo.ReadingRepository
	bookRepo bookRepo.BookRepository
}

func NewReadingService(repo readingRepo.ReadingRepository, bookRepo bookRepo.BookRepository) ReadingService {
	return &readingService{repo: repo, bookRepo: bookRepo}
}

func validReadingStatus(v entity.ReadingStatusValue) bool {
	switch v {
	case entity.ReadingIn, entity.ReadingReading, entity.ReadingFinished, entity.ReadingNotThisTime:
		return true
	}
	return false
}

func (s *readingService) SetStatus(ctx context.Context, bookID, userID uuid.UUID, status entity.ReadingStatusValue) (*entity.ReadingStatus, error) {
	if !validReadingStatus(status) {
		return nil, apperror.ErrInvalidInput
	}
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	record := &entity.ReadingStatus{
		BookID: bookID,
		UserID: userID,
		Status: status,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return s.repo.FindByBookAndUser(ctx, bookID, userID)
}

func (s *readingService) GetMine(ctx context.Context, bookID, userID uuid.UUID) (*entity.ReadingStatus, error) {
	return s.repo.FindByBookAndUser(ctx, bookID, userID)
}

func (s *readingService) WhoIsIn(ctx context.Context, bookID uuid.UUID) (*readingDto.WhoIsInResponse, error) {
	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	statuses, err := s.repo.FindByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	resp := &readingDto.WhoIsInResponse{
		Participants: make([]readingDto.ParticipantResponse, 0, len(statuses)),
	}
	for _, st := range statuses {
		if st.Status != entity.ReadingNotThisTime {
			resp.Participating++
		}
		resp.Participants = append(resp.Participants, readingDto.ParticipantResponse{
			UserID:      st.UserID,
			DisplayName: st.User.DisplayName,
			Status:      st.Status,
			UpdatedAt:   st.UpdatedAt,
		})
	}
	return resp, nil
}
