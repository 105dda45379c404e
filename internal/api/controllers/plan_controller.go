package controllers

import (
	"github.com/gin-gonic/gin"

	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// GetPlans godoc
// @Summary List subscription plans
// @Description All active plans with pricing and highlights
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (p *PlanController) GetPlans(c *gin.Context) {
	plans, err := p.planService.GetActivePlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}
