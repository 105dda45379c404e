package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

type CreditsController struct {
	creditService services.CreditServiceInterface
}

func NewCreditsController(creditService services.CreditServiceInterface) *CreditsController {
	return &CreditsController{
		creditService: creditService,
	}
}

// GetUsageStats godoc
// @Summary Get usage statistics
// @Description Current-period usage across all metered actions, with the next reset date
// @Tags Credits
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits [get]
func (cc *CreditsController) GetUsageStats(c *gin.Context) {
	userID := c.GetString("user_id")

	stats, err := cc.creditService.GetUsageStats(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if stats == nil {
		utils.RespondError(c, http.StatusNotFound, "Account not found")
		return
	}

	utils.RespondSuccess(c, stats, "Usage stats fetched successfully")
}

// CheckCredits godoc
// @Summary Check remaining credits for an action
// @Description Read-only quota check; does not consume a credit
// @Tags Credits
// @Produce json
// @Param action query string true "Action: dream, interpretation, transcription or export"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /credits/check [get]
func (cc *CreditsController) CheckCredits(c *gin.Context) {
	action, ok := parseMeteredAction(c.Query("action"))
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, "Unknown action")
		return
	}

	userID := c.GetString("user_id")

	result, err := cc.creditService.CheckCredits(c.Request.Context(), userID, action)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Credit check completed")
}

func parseMeteredAction(s string) (db_models.MeteredAction, bool) {
	switch db_models.MeteredAction(s) {
	case db_models.ActionDream, db_models.ActionInterpretation,
		db_models.ActionTranscription, db_models.ActionExport:
		return db_models.MeteredAction(s), true
	}
	return "", false
}
