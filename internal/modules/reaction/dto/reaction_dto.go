package dto

import "sourcingsprints.com/bookclub/internal/entity"

type ToggleReactionRequest struct {
	Type string `json:"type" binding:"required,oneof=Like Helpful Funny"`
}

type ReactionSummaryResponse struct {
	Counts map[entity.ReactionType]int64 `json:"counts"`
	Mine   []entity.ReactionType         `json:"mine"`
}

type ToggleReactionResponse struct {
	Reacted bool                          `json:"reacted"`
	Counts  map[entity.ReactionType]int64 `json:"counts"`
}
