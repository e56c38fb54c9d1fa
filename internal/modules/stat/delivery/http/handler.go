package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	stat "sourcingsprints.com/bookclub/internal/modules/stat/service"
	"sourcingsprints.com/bookclub/pkg/response"
)

type StatHandler struct {
	service stat.StatService
}

func NewStatHandler(service stat.StatService) *StatHandler {
	return &StatHandler{service: service}
}

func (h *StatHandler) GetDashboard(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": stats})
}
