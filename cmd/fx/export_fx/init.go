package export_fx

import (
	"go.uber.org/fx"

	"dreamoracle/internal/repositories"
	"dreamoracle/internal/services"
)

var Module = fx.Provide(provideExportService)

func provideExportService(
	accountRepo repositories.AccountRepository,
	dreamRepo repositories.IDreamRepository,
	creditService services.CreditServiceInterface,
) services.ExportServiceInterface {
	return services.NewExportService(accountRepo, dreamRepo, creditService)
}
