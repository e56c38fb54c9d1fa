package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

type CommentResponse struct {
	ID         uuid.UUID   `json:"id"`
	ReviewID   uuid.UUID   `json:"review_id"`
	UserID     uuid.UUID   `json:"user_id"`
	AuthorName string      `json:"author_name"`
	Body       string      `json:"body"`
	Mentioned  []uuid.UUID `json:"mentioned_user_ids"`
	CreatedAt  time.Time   `json:"created_at"`
}
