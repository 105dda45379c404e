package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dreamoracle/internal/models/request_models"
	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
	}
}

// CreateCheckout godoc
// @Summary Create a checkout link for a subscription plan
// @Description Returns a payOS payment URL for the chosen plan
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentRequest true "Checkout payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /payments/create-checkout [post]
func (p *PaymentController) CreateCheckout(c *gin.Context) {
	var req request_models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	checkout, err := p.paymentService.CreateCheckoutForPlan(c.Request.Context(), userID, req.PlanCode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, checkout, "Checkout created successfully")
}

// HandleWebhook receives payment confirmations from payOS. Signature
// verification happens inside the service; the route is unauthenticated.
func (p *PaymentController) HandleWebhook(c *gin.Context) {
	p.paymentService.HandleWebhook(c)
}
