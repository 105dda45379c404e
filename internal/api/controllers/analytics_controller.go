package controllers

import (
	"github.com/gin-gonic/gin"

	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

type AnalyticsController struct {
	analyticsService services.AnalyticsServiceInterface
}

func NewAnalyticsController(analyticsService services.AnalyticsServiceInterface) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetAnalytics godoc
// @Summary Get dream analytics
// @Description Aggregated statistics over the user's journal; requires the advanced statistics feature
// @Tags Analytics
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /analytics [get]
func (a *AnalyticsController) GetAnalytics(c *gin.Context) {
	userID := c.GetString("user_id")

	analytics, err := a.analyticsService.BuildAnalytics(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, analytics, "Analytics fetched successfully")
}
