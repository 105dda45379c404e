package plan_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"dreamoracle/internal/repositories"
	"dreamoracle/internal/services"
)

var Module = fx.Provide(
	providePlanService, providePlanRepo)

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(planRepo repositories.IPlanRepository) services.PlanServiceInterface {
	return services.NewPlanService(planRepo)
}
