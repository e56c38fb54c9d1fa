package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	proposalDto "sourcingsprints.com/bookclub/internal/modules/proposal/dto"
	proposal "sourcingsprints.com/bookclub/internal/modules/proposal/service"
	"sourcingsprints.com/bookclub/pkg/response"
	"sourcingsprints.com/bookclub/pkg/validator"
)

type ProposalHandler struct {
	service proposal.ProposalService
}

func NewProposalHandler(service proposal.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

func (h *ProposalHandler) Propose(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req proposalDto.ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.Propose(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (h *ProposalHandler) GetRanking(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	ranked, err := h.service.Rank(c.Request.Context(), &userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ranked})
}

func (h *ProposalHandler) GetTop(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("n", "3"))
	if n < 1 || n > 10 {
		n = 3
	}

	top, err := h.service.Top(c.Request.Context(), n)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": top})
}

func (h *ProposalHandler) ToggleVote(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	result, err := h.service.ToggleVote(c.Request.Context(), proposalID, userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (h *ProposalHandler) Promote(c *gin.Context) {
	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	var req proposalDto.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	created, err := h.service.Promote(c.Request.Context(), proposalID, entity.BookStatus(req.Status))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": created})
}

func (h *ProposalHandler) Withdraw(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), proposalID, userID, false); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "proposal withdrawn"})
}

// AdminWithdraw sits behind the admin gate; ownership is not checked.
func (h *ProposalHandler) AdminWithdraw(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	proposalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid proposal id"})
		return
	}

	if err := h.service.Withdraw(c.Request.Context(), proposalID, userID, true); err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "proposal withdrawn"})
}
