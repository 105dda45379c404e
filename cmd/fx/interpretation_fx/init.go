package interpretation_fx

import (
	"go.uber.org/fx"

	"dreamoracle/cmd/fx/ai_fx"
	"dreamoracle/internal/repositories"
	"dreamoracle/internal/services"
	"dreamoracle/pkg/utils"
)

var Module = fx.Provide(provideInterpretationService)

func provideInterpretationService(
	dreamRepo repositories.IDreamRepository,
	creditService services.CreditServiceInterface,
	aiClient utils.DreamAIClient,
	cfg ai_fx.AIConfig,
) services.InterpretationServiceInterface {
	return services.NewInterpretationService(dreamRepo, creditService, aiClient, cfg.Provider, cfg.Model)
}
