package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"sourcingsprints.com/bookclub/internal/entity"
	notifRepo "sourcingsprints.com/bookclub/internal/modules/notification/repository"
)

// Links carries the optional record references a notification can point at.
type Links struct {
	BookID    *uuid.UUID
	ReviewID  *uuid.UUID
	CommentID *uuid.UUID
}

type NotificationService interface {
	// Notify stores a notification (read=false) and, when redis is wired,
	// publishes it for live delivery.
	Notify(ctx context.Context, recipientID uuid.UUID, notifType, text string, links Links) error
	GetNotifications(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]entity.Notification, error)
	MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error
	UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
	}
}

func (s *notificationService) Notify(ctx context.Context, recipientID uuid.UUID, notifType, text string, links Links) error {
	notification := &entity.Notification{
		RecipientID: recipientID,
		Type:        notifType,
		Text:        text,
		IsRead:      false,
		BookID:      links.BookID,
		ReviewID:    links.ReviewID,
		CommentID:   links.CommentID,
	}

	// 1. Save to DB
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	// 2. Publish to Redis if Redis is available
	if s.redisClient != nil {
		channel := fmt.Sprintf("user_notifications:%s", recipientID.String())

		payload, err := json.Marshal(notification)
		if err == nil {
			s.redisClient.Publish(ctx, channel, payload)
		}
	}

	return nil
}

func (s *notificationService) GetNotifications(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]entity.Notification, error) {
	return s.repo.GetByRecipient(ctx, recipientID, limit, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id, recipientID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, recipientID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, recipientID)
}

func (s *notificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}
