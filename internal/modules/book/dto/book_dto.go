package dto

import "sourcingsprints.com/bookclub/internal/entity"

type CreateBookRequest struct {
	Title    string  `json:"title" binding:"required,max=255"`
	Author   string  `json:"author" binding:"required,max=255"`
	CoverURL *string `json:"cover_url" binding:"omitempty,url"`
	Status   string  `json:"status" binding:"omitempty,oneof=Current Read Archived"`
}

// ShelfResponse is the home view: the single current book plus past reads.
type ShelfResponse struct {
	Current *entity.Book  `json:"current"`
	Books   []entity.Book `json:"books"`
}
