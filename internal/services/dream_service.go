package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/internal/models/request_models"
	"dreamoracle/internal/models/response_models"
	"dreamoracle/internal/repositories"
	"dreamoracle/pkg/utils"
)

type DreamServiceInterface interface {
	// CreateDream is a metered action; the returned CreditResult carries the
	// denial details when the quota is gone and the dream was not saved.
	CreateDream(ctx context.Context, userID string, request request_models.CreateDreamRequest) (*response_models.DreamResponse, *response_models.CreditResult, error)
	GetDream(ctx context.Context, userID, dreamID string) (*response_models.DreamResponse, error)
	ListDreams(ctx context.Context, userID string, request request_models.ListDreamsRequest) (*response_models.DreamListResponse, error)
	UpdateDream(ctx context.Context, userID, dreamID string, request request_models.UpdateDreamRequest) (*response_models.DreamResponse, error)
	DeleteDream(ctx context.Context, userID, dreamID string) error
}

type DreamService struct {
	dreamRepo     repositories.IDreamRepository
	creditService CreditServiceInterface
}

func NewDreamService(dreamRepo repositories.IDreamRepository, creditService CreditServiceInterface) DreamServiceInterface {
	return &DreamService{
		dreamRepo:     dreamRepo,
		creditService: creditService,
	}
}

func dreamToResponse(dream *db_models.Dream) *response_models.DreamResponse {
	resp := &response_models.DreamResponse{
		ID:        dream.ID.String(),
		Title:     dream.Title,
		Narrative: dream.Narrative,
		Mood:      dream.Mood,
		Lucid:     dream.Lucid,
		Recurring: dream.Recurring,
		SleptAt:   dream.SleptAt,
		WokeAt:    dream.WokeAt,
		Tags:      dream.Tags,
		CreatedAt: dream.CreatedAt,
	}

	for i := range dream.Interpretations {
		resp.Interpretations = append(resp.Interpretations, interpretationToResponse(&dream.Interpretations[i]))
	}

	return resp
}

func interpretationToResponse(in *db_models.Interpretation) response_models.InterpretationResponse {
	resp := response_models.InterpretationResponse{
		ID:        in.ID.String(),
		DreamID:   in.DreamID.String(),
		Provider:  in.Provider,
		Summary:   in.Summary,
		Emotions:  in.Emotions,
		Guidance:  in.Guidance,
		CreatedAt: in.CreatedAt,
	}

	if len(in.Symbols) > 0 {
		var symbols []response_models.Symbol
		if err := json.Unmarshal(in.Symbols, &symbols); err == nil {
			resp.Symbols = symbols
		}
	}

	return resp
}

func (d *DreamService) CreateDream(ctx context.Context, userID string, request request_models.CreateDreamRequest) (*response_models.DreamResponse, *response_models.CreditResult, error) {
	accountID, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil, utils.ErrAccountNotFound
	}

	credits, err := d.creditService.UseCredit(ctx, userID, db_models.ActionDream, datatypes.JSON(`{"source":"journal"}`))
	if err != nil {
		return nil, nil, err
	}
	if !credits.Allowed {
		return nil, credits, nil
	}

	dream := &db_models.Dream{
		AccountID: accountID,
		Title:     request.Title,
		Narrative: request.Narrative,
		Mood:      request.Mood,
		Lucid:     request.Lucid,
		Recurring: request.Recurring,
		SleptAt:   request.SleptAt,
		WokeAt:    request.WokeAt,
		Tags:      request.Tags,
	}

	if err := d.dreamRepo.Insert(ctx, dream); err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	return dreamToResponse(dream), credits, nil
}

func (d *DreamService) GetDream(ctx context.Context, userID, dreamID string) (*response_models.DreamResponse, error) {
	accountID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	dream, err := d.dreamRepo.FindById(ctx, accountID, dreamID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if dream == nil {
		return nil, utils.ErrDreamNotFound
	}

	return dreamToResponse(dream), nil
}

func (d *DreamService) ListDreams(ctx context.Context, userID string, request request_models.ListDreamsRequest) (*response_models.DreamListResponse, error) {
	accountID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	page := request.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}

	pageSize := request.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	filter := repositories.DreamFilter{Mood: request.Mood, Tag: request.Tag}
	dreams, total, err := d.dreamRepo.List(ctx, accountID, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := &response_models.DreamListResponse{
		Dreams:   make([]response_models.DreamResponse, 0, len(dreams)),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	for i := range dreams {
		resp.Dreams = append(resp.Dreams, *dreamToResponse(&dreams[i]))
	}

	return resp, nil
}

func (d *DreamService) UpdateDream(ctx context.Context, userID, dreamID string, request request_models.UpdateDreamRequest) (*response_models.DreamResponse, error) {
	accountID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrAccountNotFound
	}

	dream, err := d.dreamRepo.FindById(ctx, accountID, dreamID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if dream == nil {
		return nil, utils.ErrDreamNotFound
	}

	if request.Title != nil {
		dream.Title = *request.Title
	}
	if request.Narrative != nil {
		dream.Narrative = *request.Narrative
	}
	if request.Mood != nil {
		dream.Mood = *request.Mood
	}
	if request.Lucid != nil {
		dream.Lucid = *request.Lucid
	}
	if request.Recurring != nil {
		dream.Recurring = *request.Recurring
	}
	if request.SleptAt != nil {
		dream.SleptAt = request.SleptAt
	}
	if request.WokeAt != nil {
		dream.WokeAt = request.WokeAt
	}
	if request.Tags != nil {
		dream.Tags = request.Tags
	}

	if err := d.dreamRepo.Update(ctx, dream); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return dreamToResponse(dream), nil
}

func (d *DreamService) DeleteDream(ctx context.Context, userID, dreamID string) error {
	accountID, err := uuid.Parse(userID)
	if err != nil {
		return utils.ErrAccountNotFound
	}

	if err := d.dreamRepo.Delete(ctx, accountID, dreamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrDreamNotFound
		}
		return utils.ErrDatabaseError
	}

	return nil
}
