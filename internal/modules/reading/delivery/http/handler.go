package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	readingDto "sourcingsprints.com/bookclub/internal/modules/reading/dto"
	reading "sourcingsprints.com/bookclub/internal/modules/reading/service"
	"sourcingsprints.com/bookclub/pkg/response"
	"sourcingsprints.com/bookclub/pkg/validator"
)

type ReadingHandler struct {
	service reading.ReadingService
}

func NewReadingHandler(service reading.ReadingService) *ReadingHandler {
	return &ReadingHandler{service: service}
}

func (h *ReadingHandler) SetStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	var req readingDto.SetReadingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	saved, err := h.service.SetStatus(c.Request.Context(), bookID, userID, entity.ReadingStatusValue(req.Status))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": saved})
}

func (h *ReadingHandler) GetMyStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	status, err := h.service.GetMine(c.Request.Context(), bookID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": status})
}

func (h *ReadingHandler) GetWhoIsIn(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book id"})
		return
	}

	resp, err := h.service.WhoIsIn(c.Request.Context(), bookID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
