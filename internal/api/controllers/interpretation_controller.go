package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamoracle/internal/models/request_models"
	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

type InterpretationController struct {
	interpretationService services.InterpretationServiceInterface
}

func NewInterpretationController(interpretationService services.InterpretationServiceInterface) *InterpretationController {
	return &InterpretationController{
		interpretationService: interpretationService,
	}
}

// InterpretDream godoc
// @Summary Interpret a dream
// @Description Generate an AI interpretation for a dream; counts against the monthly interpretation quota
// @Tags Interpretations
// @Accept json
// @Produce json
// @Param id path string true "Dream ID"
// @Param request body request_models.CreateInterpretationRequest false "Optional focus question"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dreams/{id}/interpretation [post]
func (i *InterpretationController) InterpretDream(c *gin.Context) {
	var req request_models.CreateInterpretationRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	interp, credit, err := i.interpretationService.InterpretDream(c.Request.Context(), userID, c.Param("id"), req.Question)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if credit != nil && !credit.Allowed {
		utils.RespondDenied(c, http.StatusPaymentRequired, credit, credit.Message)
		return
	}

	utils.RespondSuccess(c, interp, "Dream interpreted successfully")
}

// Transcribe godoc
// @Summary Transcribe a voice memo
// @Description Convert an uploaded audio recording to text; counts against the monthly transcription quota
// @Tags Interpretations
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio file"
// @Param language formData string false "Language hint, e.g. en"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Security BearerAuth
// @Router /transcriptions [post]
func (i *InterpretationController) Transcribe(c *gin.Context) {
	var req request_models.TranscriptionRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Audio file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Failed to read audio file")
		return
	}
	defer file.Close()

	userID := c.GetString("user_id")

	result, credit, err := i.interpretationService.Transcribe(c.Request.Context(), userID, fileHeader.Filename, file, req.Language)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if credit != nil && !credit.Allowed {
		utils.RespondDenied(c, http.StatusPaymentRequired, credit, credit.Message)
		return
	}

	utils.RespondSuccess(c, result, "Audio transcribed successfully")
}
