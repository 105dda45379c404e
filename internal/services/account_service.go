package services

import (
	"context"
	"log"
	"time"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/internal/models/request_models"
	"dreamoracle/internal/models/response_models"
	"dreamoracle/internal/repositories"
	mem "dreamoracle/pkg/memcache"
	"dreamoracle/pkg/utils"
)

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) error
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	GetAccount(ctx context.Context, userID string) (*response_models.AccountResponse, error)
	GetAllAccounts(ctx context.Context) ([]response_models.AccountResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOtpToken(request request_models.RequestVerifyOtpToken) error
	ResetPasswordWithOtp(ctx context.Context, request request_models.ForgotPasswordRequest) error
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	mailService IMailService
	resetTokens mem.ResetTokenStore
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	mailService IMailService,
	resetTokens mem.ResetTokenStore,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		mailService: mailService,
		resetTokens: resetTokens,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) error {
	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user",

		// Everyone starts on free; the billing window is anchored to the
		// signup day until a payment moves it.
		SubscriptionTier:   db_models.TierFree,
		SubscriptionStatus: db_models.SubStatusActive,
		CreditsResetAt:     utils.NowUnixSeconds(),
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.AccountLoginResponse{
		Token:      token,
		HasPremium: EffectiveTier(account, time.Now()) != db_models.TierFree,
	}, nil
}

func (a *AccountService) GetAccount(ctx context.Context, userID string) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := accountToResponse(account)
	return &resp, nil
}

func accountToResponse(account *db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:                 account.ID.String(),
		Name:               account.Name,
		Email:              account.Email,
		SubscriptionTier:   string(account.SubscriptionTier),
		SubscriptionStatus: string(account.SubscriptionStatus),
		SubscriptionEnds:   account.SubscriptionEnds,
	}
}

// GetAllAccounts backs the admin screen; the route is role-gated.
func (a *AccountService) GetAllAccounts(ctx context.Context) ([]response_models.AccountResponse, error) {
	accounts, err := a.accountRepo.ListAll(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, accountToResponse(&accounts[i]))
	}
	return out, nil
}

func (a *AccountService) ForgotPassword(ctx context.Context, email string) error {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if account == nil {
		// Do not leak which emails exist; the controller answers the same
		// either way.
		return nil
	}

	otp, err := utils.GenerateOtpCode(6)
	if err != nil {
		return utils.ErrDatabaseError
	}

	a.resetTokens.Set(otp, account.Email, 15*time.Minute)

	if err := a.mailService.SendMailToResetPassword(account.Email, otp); err != nil {
		log.Printf("Failed to send reset mail to %s: %v", account.Email, err)
	}

	return nil
}

func (a *AccountService) VerifyOtpToken(request request_models.RequestVerifyOtpToken) error {
	email, ok := a.resetTokens.Peek(request.Token)
	if !ok || email != request.Email {
		return utils.ErrInvalidResetToken
	}
	return nil
}

func (a *AccountService) ResetPasswordWithOtp(ctx context.Context, request request_models.ForgotPasswordRequest) error {
	email := a.resetTokens.Consume(request.Token)
	if email == "" || email != request.Email {
		return utils.ErrInvalidResetToken
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.accountRepo.UpdatePassword(ctx, email, hashedPassword); err != nil {
		return utils.ErrDatabaseError
	}

	return nil
}
