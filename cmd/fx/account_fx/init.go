package account_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"dreamoracle/internal/repositories"
	"dreamoracle/internal/services"
	mem "dreamoracle/pkg/memcache"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideAccountService(accountRepo repositories.AccountRepository, mailService services.IMailService, resetTokens mem.ResetTokenStore) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, mailService, resetTokens)
}
