package comment

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	commentDto "sourcingsprints.com/bookclub/internal/modules/comment/dto"
	commentRepo "sourcingsprints.com/bookclub/internal/modules/comment/repository"
	notifService "sourcingsprints.com/bookclub/internal/modules/notification/service"
	profile "sourcingsprints.com/bookclub/internal/modules/profile/service"
	reviewRepo "sourcingsprints.com/bookclub/internal/modules/review/repository"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type CommentService interface {
	// Post appends a comment to a review, resolves its @name tokens against
	// the profile directory, records a mention per resolved user, and
	// notifies each of them. Unresolved tokens are dropped silently.
	Post(ctx context.Context, reviewID, authorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error)
	List(ctx context.Context, reviewID uuid.UUID) ([]commentDto.CommentResponse, error)
}

type commentService struct {
	repo                commentRepo.CommentRepository
	reviewRepo          reviewRepo.ReviewRepository
	profileService      profile.ProfileService
	notificationService notifService.NotificationService
}

func NewCommentService(repo commentRepo.CommentRepository, reviewRepo reviewRepo.ReviewRepository, profileService profile.ProfileService, notificationService notifService.NotificationService) CommentService {
	return &commentService{
		repo:                repo,
		reviewRepo:          reviewRepo,
		profileService:      profileService,
		notificationService: notificationService,
	}
}

func (s *commentService) Post(ctx context.Context, reviewID, authorID uuid.UUID, req commentDto.CreateCommentRequest) (*commentDto.CommentResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return nil, apperror.ErrInvalidInput
	}

	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}

	// Resolve the author before writing anything, so a failed lookup cannot
	// leave a persisted comment behind a returned error.
	author, err := s.profileService.Get(ctx, authorID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ReviewID: reviewID,
		UserID:   authorID,
		Body:     body,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, err
	}

	mentioned, err := s.recordMentions(ctx, comment)
	if err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		text := fmt.Sprintf("%s mentioned you in a comment", author.DisplayName)
		links := notifService.Links{ReviewID: &reviewID, CommentID: &comment.ID}
		for _, userID := range mentioned {
			if err := s.notificationService.Notify(ctx, userID, entity.NotificationMention, text, links); err != nil {
				log.Printf("Failed to notify mentioned user %s: %v", userID, err)
			}
		}
	}

	return &commentDto.CommentResponse{
		ID:         comment.ID,
		ReviewID:   comment.ReviewID,
		UserID:     comment.UserID,
		AuthorName: author.DisplayName,
		Body:       comment.Body,
		Mentioned:  mentioned,
		CreatedAt:  comment.CreatedAt,
	}, nil
}

// recordMentions matches the comment's @name tokens against display names
// and writes one mention row per resolved user.
func (s *commentService) recordMentions(ctx context.Context, comment *entity.Comment) ([]uuid.UUID, error) {
	tokens := ExtractMentionTokens(comment.Body)
	if len(tokens) == 0 {
		return nil, nil
	}

	users, err := s.profileService.ResolveDisplayNames(ctx, tokens)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}

	mentions := make([]entity.Mention, 0, len(users))
	mentioned := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		mentions = append(mentions, entity.Mention{
			CommentID:       comment.ID,
			MentionedUserID: u.ID,
		})
		mentioned = append(mentioned, u.ID)
	}
	if err := s.repo.CreateMentions(ctx, mentions); err != nil {
		return nil, err
	}
	return mentioned, nil
}

func (s *commentService) List(ctx context.Context, reviewID uuid.UUID) ([]commentDto.CommentResponse, error) {
	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		return nil, err
	}

	comments, err := s.repo.FindByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	resp := make([]commentDto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		mentions, err := s.repo.FindMentionsByComment(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		mentioned := make([]uuid.UUID, 0, len(mentions))
		for _, m := range mentions {
			mentioned = append(mentioned, m.MentionedUserID)
		}
		resp = append(resp, commentDto.CommentResponse{
			ID:         c.ID,
			ReviewID:   c.ReviewID,
			UserID:     c.UserID,
			AuthorName: c.User.DisplayName,
			Body:       c.Body,
			Mentioned:  mentioned,
			CreatedAt:  c.CreatedAt,
		})
	}
	return resp, nil
}
