package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

type SymbolController struct {
	symbolService services.SymbolServiceInterface
}

func NewSymbolController(symbolService services.SymbolServiceInterface) *SymbolController {
	return &SymbolController{
		symbolService: symbolService,
	}
}

// SearchSymbols godoc
// @Summary Search the dream symbol dictionary
// @Description Semantic search over symbol meanings; requires the symbol dictionary feature
// @Tags Symbols
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max results (default 10)"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /symbols [get]
func (s *SymbolController) SearchSymbols(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.RespondError(c, http.StatusBadRequest, "Query parameter q is required")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	userID := c.GetString("user_id")

	results, err := s.symbolService.Search(c.Request.Context(), userID, query, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, results, "Symbols fetched successfully")
}
