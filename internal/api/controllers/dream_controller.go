package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamoracle/internal/models/request_models"
	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

type DreamController struct {
	dreamService services.DreamServiceInterface
}

func NewDreamController(dreamService services.DreamServiceInterface) *DreamController {
	return &DreamController{
		dreamService: dreamService,
	}
}

// CreateDream godoc
// @Summary Record a new dream
// @Description Save a dream entry; counts against the monthly dream quota
// @Tags Dreams
// @Accept json
// @Produce json
// @Param request body request_models.CreateDreamRequest true "Dream payload"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dreams [post]
func (d *DreamController) CreateDream(c *gin.Context) {
	var req request_models.CreateDreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	dream, credit, err := d.dreamService.CreateDream(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if credit != nil && !credit.Allowed {
		utils.RespondDenied(c, http.StatusPaymentRequired, credit, credit.Message)
		return
	}

	utils.RespondSuccess(c, dream, "Dream recorded successfully")
}

// GetDream godoc
// @Summary Get a dream
// @Description Fetch a single dream with its interpretations
// @Tags Dreams
// @Produce json
// @Param id path string true "Dream ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dreams/{id} [get]
func (d *DreamController) GetDream(c *gin.Context) {
	userID := c.GetString("user_id")

	dream, err := d.dreamService.GetDream(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dream, "Dream fetched successfully")
}

// ListDreams godoc
// @Summary List dreams
// @Description Page through the user's journal, optionally filtered by mood or tag
// @Tags Dreams
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param mood query string false "Mood filter"
// @Param tag query string false "Tag filter"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dreams [get]
func (d *DreamController) ListDreams(c *gin.Context) {
	var req request_models.ListDreamsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	userID := c.GetString("user_id")

	list, err := d.dreamService.ListDreams(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Dreams fetched successfully")
}

// UpdateDream godoc
// @Summary Update a dream
// @Description Edit a dream entry; editing does not consume credits
// @Tags Dreams
// @Accept json
// @Produce json
// @Param id path string true "Dream ID"
// @Param request body request_models.UpdateDreamRequest true "Fields to update"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dreams/{id} [put]
func (d *DreamController) UpdateDream(c *gin.Context) {
	var req request_models.UpdateDreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	userID := c.GetString("user_id")

	dream, err := d.dreamService.UpdateDream(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dream, "Dream updated successfully")
}

// DeleteDream godoc
// @Summary Delete a dream
// @Description Remove a dream entry; deleting does not refund credits
// @Tags Dreams
// @Produce json
// @Param id path string true "Dream ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /dreams/{id} [delete]
func (d *DreamController) DeleteDream(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := d.dreamService.DeleteDream(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Dream deleted successfully")
}
