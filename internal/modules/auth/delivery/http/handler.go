package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	authDto "sourcingsprints.com/bookclub/internal/modules/auth/dto"
	auth "sourcingsprints.com/bookclub/internal/modules/auth/service"
	"sourcingsprints.com/bookclub/pkg/response"
	"sourcingsprints.com/bookclub/pkg/validator"
)

type AuthHandler struct {
	service auth.AuthService
}

func NewAuthHandler(service auth.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req authDto.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	code, err := h.service.RequestCode(c.Request.Context(), req.Email)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	// TODO: deliver by email once an SMTP provider is picked; for now the
	// code only lands in the server log.
	log.Printf("Login code for %s: %s", req.Email, code)
	c.JSON(http.StatusOK, gin.H{"message": "login code sent"})
}

func (h *AuthHandler) VerifyCode(c *gin.Context) {
	var req authDto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	session, err := h.service.VerifyCode(c.Request.Context(), req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": session})
}
