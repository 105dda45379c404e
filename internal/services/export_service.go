package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/internal/models/response_models"
	"dreamoracle/internal/repositories"
	"dreamoracle/pkg/utils"
)

type ExportServiceInterface interface {
	// BuildExport assembles the full JSON backup; a metered action, denied
	// outright on the free tier.
	BuildExport(ctx context.Context, userID string) (*response_models.DreamExport, *response_models.CreditResult, error)
}

type ExportService struct {
	accountRepo   repositories.AccountRepository
	dreamRepo     repositories.IDreamRepository
	creditService CreditServiceInterface
}

func NewExportService(
	accountRepo repositories.AccountRepository,
	dreamRepo repositories.IDreamRepository,
	creditService CreditServiceInterface,
) ExportServiceInterface {
	return &ExportService{
		accountRepo:   accountRepo,
		dreamRepo:     dreamRepo,
		creditService: creditService,
	}
}

func (s *ExportService) BuildExport(ctx context.Context, userID string) (*response_models.DreamExport, *response_models.CreditResult, error) {
	accountID, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil, utils.ErrAccountNotFound
	}

	credits, err := s.creditService.UseCredit(ctx, userID, db_models.ActionExport, datatypes.JSON(`{"format":"json"}`))
	if err != nil {
		return nil, nil, err
	}
	if !credits.Allowed {
		return nil, credits, nil
	}

	account, err := s.accountRepo.FindById(ctx, userID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, nil, utils.ErrAccountNotFound
	}

	dreams, err := s.dreamRepo.ListAll(ctx, accountID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	export := &response_models.DreamExport{
		ExportedAt: utils.NowUnixSeconds(),
		Account: response_models.AccountResponse{
			ID:                 account.ID.String(),
			Name:               account.Name,
			Email:              account.Email,
			SubscriptionTier:   string(account.SubscriptionTier),
			SubscriptionStatus: string(account.SubscriptionStatus),
			SubscriptionEnds:   account.SubscriptionEnds,
		},
		Dreams: make([]response_models.DreamResponse, 0, len(dreams)),
	}

	for i := range dreams {
		export.Dreams = append(export.Dreams, *dreamToResponse(&dreams[i]))
	}

	return export, credits, nil
}
