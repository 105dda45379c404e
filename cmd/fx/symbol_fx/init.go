package symbol_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"dreamoracle/internal/repositories"
	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

var Module = fx.Provide(
	provideSymbolService, provideSymbolRepo)

func provideSymbolRepo(db *gorm.DB) repositories.ISymbolRepository {
	return repositories.NewSymbolRepository(db)
}

func provideSymbolService(symbolRepo repositories.ISymbolRepository, creditService services.CreditServiceInterface, aiClient utils.DreamAIClient) services.SymbolServiceInterface {
	return services.NewSymbolService(symbolRepo, creditService, aiClient)
}
