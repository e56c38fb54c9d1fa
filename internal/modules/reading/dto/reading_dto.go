package dto

import (
	"time"

	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
)

type SetReadingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=In Reading Finished NotThisTime"`
}

type ParticipantResponse struct {
	UserID      uuid.UUID                 `json:"user_id"`
	DisplayName string                    `json:"display_name"`
	Status      entity.ReadingStatusValue `json:"status"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// WhoIsInResponse is the roll call for a book. Participating counts everyone
// who has set a status other than NotThisTime.
type WhoIsInResponse struct {
	Participating int64                 `json:"participating"`
	Participants  []ParticipantResponse `json:"participants"`
}
