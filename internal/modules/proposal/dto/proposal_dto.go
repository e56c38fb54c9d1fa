package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProposeRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Author   string  `json:"author" binding:"required,max=255"`
	CoverURL *string `json:"cover_url" binding:"omitempty,url"`
	WhyRead  *string `json:"why_read"`
}

type PromoteRequest struct {
	Status string `json:"status" binding:"required,oneof=Current Read"`
}

type RankedProposalResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	CoverURL  *string   `json:"cover_url"`
	WhyRead   *string   `json:"why_read"`
	Proposer  uuid.UUID `json:"proposed_by"`
	CreatedAt time.Time `json:"created_at"`
	VoteCount int64     `json:"vote_count"`
	Voted     bool      `json:"voted"`
}

type ToggleVoteResponse struct {
	Voted     bool  `json:"voted"`
	VoteCount int64 `json:"vote_count"`
}
