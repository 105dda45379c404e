package services

import (
	"context"
	"encoding/json"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/internal/models/response_models"
	"dreamoracle/internal/repositories"
	"dreamoracle/pkg/utils"
)

type PlanServiceInterface interface {
	GetActivePlans(ctx context.Context) ([]response_models.SubscriptionPlan, error)
	GetPlanByCode(ctx context.Context, code string) (*response_models.SubscriptionPlan, error)
}

type PlanService struct {
	planRepo repositories.IPlanRepository
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
	}
}

func planToResponse(plan *db_models.Plan) response_models.SubscriptionPlan {
	resp := response_models.SubscriptionPlan{
		ID:          plan.ID,
		Code:        plan.Code,
		Tier:        string(plan.Tier),
		Name:        plan.Name,
		Description: plan.Description,
		Period:      string(plan.Period),
		Price:       plan.PriceMinor,
		Currency:    plan.Currency,
		TrialDays:   plan.TrialDays,
		IsActive:    plan.IsActive,
	}

	if len(plan.Highlights) > 0 {
		var highlights []string
		if err := json.Unmarshal(plan.Highlights, &highlights); err == nil {
			resp.Highlights = highlights
		}
	}

	return resp
}

func (p *PlanService) GetActivePlans(ctx context.Context) ([]response_models.SubscriptionPlan, error) {
	plans, err := p.planRepo.GetActivePlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	result := make([]response_models.SubscriptionPlan, 0, len(plans))
	for i := range plans {
		result = append(result, planToResponse(&plans[i]))
	}

	return result, nil
}

func (p *PlanService) GetPlanByCode(ctx context.Context, code string) (*response_models.SubscriptionPlan, error) {
	plan, err := p.planRepo.GetPlanByCode(ctx, code)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	resp := planToResponse(plan)
	return &resp, nil
}
