package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/psmolich79/healthy-meal/internal/service"
)

type UsageHandler struct {
	usageService service.IUsageService
}

func NewUsageHandler(usageService service.IUsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

func (h *UsageHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai")
	{
		ai.GET("/usage", h.GetUsage)
	}
}

func (h *UsageHandler) GetUsage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.usageService.GetUsage(
		c.Request.Context(),
		userID,
		c.DefaultQuery("period", "month"),
		c.Query("start_date"),
		c.Query("end_date"),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
