package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

type ExportController struct {
	exportService services.ExportServiceInterface
}

func NewExportController(exportService services.ExportServiceInterface) *ExportController {
	return &ExportController{
		exportService: exportService,
	}
}

// ExportJournal godoc
// @Summary Export the dream journal
// @Description Download a full JSON backup of the journal; counts against the monthly export quota
// @Tags Export
// @Produce json
// @Success 200 {object} response_models.DreamExport
// @Failure 402 {object} utils.APIResponse
// @Security BearerAuth
// @Router /export [get]
func (e *ExportController) ExportJournal(c *gin.Context) {
	userID := c.GetString("user_id")

	export, credit, err := e.exportService.BuildExport(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if credit != nil && !credit.Allowed {
		utils.RespondDenied(c, http.StatusPaymentRequired, credit, credit.Message)
		return
	}

	filename := fmt.Sprintf("dreamoracle-export-%s.json", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.JSON(http.StatusOK, export)
}
