package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	bookDto "sourcingsprints.com/bookclub/internal/modules/book/dto"
	book "sourcingsprints.com/bookclub/internal/modules/book/service"
	"sourcingsprints.com/bookclub/pkg/response"
	"sourcingsprints.com/bookclub/pkg/validator"
)

type BookHandler struct {
	service book.BookService
}

func NewBookHandler(service book.BookService) *BookHandler {
	return &BookHandler{service: service}
}

func (h *BookHandler) GetShelf(c *gin.Context) {
	shelf, err := h.service.Shelf(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": shelf})
}

func (h *BookHandler) GetBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

func (h *BookHandler) ListAll(c *gin.Context) {
	books, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": books})
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req bookDto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (h *BookHandler) SetCurrent(c *gin.Context) {
	h.updateStatus(c, h.service.SetCurrent)
}

func (h *BookHandler) MarkRead(c *gin.Context) {
	h.updateStatus(c, h.service.MarkRead)
}

func (h *BookHandler) Archive(c *gin.Context) {
	h.updateStatus(c, h.service.Archive)
}

func (h *BookHandler) Unarchive(c *gin.Context) {
	h.updateStatus(c, h.service.Unarchive)
}

func (h *BookHandler) UploadCover(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cover file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	defer file.Close()

	updated, err := h.service.UploadCover(c.Request.Context(), id, file, fileHeader.Filename)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}

func (h *BookHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	results, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": results})
}

func (h *BookHandler) updateStatus(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}
