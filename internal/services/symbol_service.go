package services

import (
	"context"
	"strings"

	"dreamoracle/internal/models/response_models"
	"dreamoracle/internal/repositories"
	"dreamoracle/pkg/utils"
)

type SymbolServiceInterface interface {
	// Search finds dictionary entries semantically close to the query. Gated
	// by the symbol-dictionary feature flag.
	Search(ctx context.Context, userID, query string, limit int) ([]response_models.SymbolSearchResult, error)
}

type SymbolService struct {
	symbolRepo    repositories.ISymbolRepository
	creditService CreditServiceInterface
	aiClient      utils.DreamAIClient
}

func NewSymbolService(
	symbolRepo repositories.ISymbolRepository,
	creditService CreditServiceInterface,
	aiClient utils.DreamAIClient,
) SymbolServiceInterface {
	return &SymbolService{
		symbolRepo:    symbolRepo,
		creditService: creditService,
		aiClient:      aiClient,
	}
}

func (s *SymbolService) Search(ctx context.Context, userID, query string, limit int) ([]response_models.SymbolSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []response_models.SymbolSearchResult{}, nil
	}

	allowed, err := s.creditService.HasFeature(ctx, userID, FeatureSymbolDictionary)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, utils.ErrFeatureNotIncluded
	}

	vector, err := s.aiClient.GetEmbedding(ctx, query)
	if err != nil {
		return nil, utils.ErrAIProviderError
	}

	matches, err := s.symbolRepo.SearchByVector(ctx, vector, limit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	results := make([]response_models.SymbolSearchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, response_models.SymbolSearchResult{
			Name:       match.Name,
			Meaning:    match.Meaning,
			Categories: match.Categories,
			Similarity: match.Similarity,
		})
	}

	return results, nil
}
