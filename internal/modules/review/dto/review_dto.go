package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertReviewRequest struct {
	Rating   *int   `json:"rating" binding:"omitempty,min=1,max=5"`
	Thoughts string `json:"thoughts" binding:"required"`
}

type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	BookID       uuid.UUID `json:"book_id"`
	UserID       uuid.UUID `json:"user_id"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       *int      `json:"rating,omitempty"`
	Thoughts     string    `json:"thoughts"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BookReviewsResponse struct {
	Count   int64            `json:"count"`
	Average *float64         `json:"average"`
	Reviews []ReviewResponse `json:"reviews"`
}
