package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"dreamoracle/internal/models/db_models"
	"dreamoracle/internal/models/response_models"
	"dreamoracle/internal/repositories"
	"dreamoracle/pkg/utils"
)

type InterpretationServiceInterface interface {
	// InterpretDream is a metered action; on a denied check the dream is left
	// untouched and the CreditResult explains the denial.
	InterpretDream(ctx context.Context, userID, dreamID, question string) (*response_models.InterpretationResponse, *response_models.CreditResult, error)

	// Transcribe is a metered action converting a voice memo to text.
	Transcribe(ctx context.Context, userID, filename string, audio io.Reader, language string) (*response_models.TranscriptionResponse, *response_models.CreditResult, error)
}

type InterpretationService struct {
	dreamRepo     repositories.IDreamRepository
	creditService CreditServiceInterface
	aiClient      utils.DreamAIClient
	provider      string
	model         string
}

func NewInterpretationService(
	dreamRepo repositories.IDreamRepository,
	creditService CreditServiceInterface,
	aiClient utils.DreamAIClient,
	provider, model string,
) InterpretationServiceInterface {
	return &InterpretationService{
		dreamRepo:     dreamRepo,
		creditService: creditService,
		aiClient:      aiClient,
		provider:      provider,
		model:         model,
	}
}

func (s *InterpretationService) InterpretDream(ctx context.Context, userID, dreamID, question string) (*response_models.InterpretationResponse, *response_models.CreditResult, error) {
	accountID, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil, utils.ErrAccountNotFound
	}

	dream, err := s.dreamRepo.FindById(ctx, accountID, dreamID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if dream == nil {
		return nil, nil, utils.ErrDreamNotFound
	}

	metadata := datatypes.JSON(fmt.Sprintf(`{"dream_id":%q}`, dreamID))
	credits, err := s.creditService.UseCredit(ctx, userID, db_models.ActionInterpretation, metadata)
	if err != nil {
		return nil, nil, err
	}
	if !credits.Allowed {
		return nil, credits, nil
	}

	result, err := s.aiClient.InterpretDream(ctx, dream.Narrative, dream.Mood, question)
	if err != nil {
		log.Printf("Interpretation failed for dream %s: %v", dreamID, err)
		return nil, nil, utils.ErrAIProviderError
	}

	symbolsJSON, err := json.Marshal(result.Symbols)
	if err != nil {
		symbolsJSON = []byte("[]")
	}

	interpretation := &db_models.Interpretation{
		DreamID:   dream.ID,
		AccountID: accountID,
		Provider:  s.provider,
		Model:     s.model,
		Summary:   result.Summary,
		Symbols:   symbolsJSON,
		Emotions:  result.Emotions,
		Guidance:  result.Guidance,
	}

	if err := s.dreamRepo.InsertInterpretation(ctx, interpretation); err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	resp := interpretationToResponse(interpretation)
	return &resp, credits, nil
}

func (s *InterpretationService) Transcribe(ctx context.Context, userID, filename string, audio io.Reader, language string) (*response_models.TranscriptionResponse, *response_models.CreditResult, error) {
	credits, err := s.creditService.UseCredit(ctx, userID, db_models.ActionTranscription, datatypes.JSON(`{"source":"voice_memo"}`))
	if err != nil {
		return nil, nil, err
	}
	if !credits.Allowed {
		return nil, credits, nil
	}

	text, err := s.aiClient.Transcribe(ctx, filename, audio, language)
	if err != nil {
		log.Printf("Transcription failed: %v", err)
		return nil, nil, utils.ErrAIProviderError
	}

	return &response_models.TranscriptionResponse{
		Text:     text,
		Language: language,
	}, credits, nil
}
