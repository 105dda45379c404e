package dream_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"dreamoracle/internal/repositories"
	"dreamoracle/internal/services"
)

var Module = fx.Provide(
	provideDreamService, provideDreamRepo)

func provideDreamRepo(db *gorm.DB) repositories.IDreamRepository {
	return repositories.NewDreamRepository(db)
}

func provideDreamService(dreamRepo repositories.IDreamRepository, creditService services.CreditServiceInterface) services.DreamServiceInterface {
	return services.NewDreamService(dreamRepo, creditService)
}
