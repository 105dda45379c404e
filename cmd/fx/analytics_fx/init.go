package analytics_fx

import (
	"go.uber.org/fx"

	"dreamoracle/internal/repositories"
	"dreamoracle/internal/services"
)

var Module = fx.Provide(provideAnalyticsService)

func provideAnalyticsService(dreamRepo repositories.IDreamRepository, creditService services.CreditServiceInterface) services.AnalyticsServiceInterface {
	return services.NewAnalyticsService(dreamRepo, creditService)
}
