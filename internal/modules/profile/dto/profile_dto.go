package dto

import "github.com/google/uuid"

type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	IsAdmin     bool      `json:"is_admin"`
}

type CreateProfileRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	IsAdmin     bool   `json:"is_admin"`
}

type SetAdminRequest struct {
	IsAdmin *bool `json:"is_admin" binding:"required"`
}
