package credits_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"dreamoracle/internal/repositories"
	"dreamoracle/internal/services"
)

var Module = fx.Provide(
	provideCatalog, provideUsageRepo, provideCreditService)

func provideCatalog() *services.Catalog {
	return services.DefaultCatalog()
}

func provideUsageRepo(db *gorm.DB) repositories.UsageRepository {
	return repositories.NewUsageRepository(db)
}

func provideCreditService(accountRepo repositories.AccountRepository, usageRepo repositories.UsageRepository, catalog *services.Catalog) services.CreditServiceInterface {
	return services.NewCreditService(accountRepo, usageRepo, catalog)
}
