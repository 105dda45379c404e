package repositories

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"dreamoracle/internal/models/db_models"
)

type SymbolMatch struct {
	db_models.DreamSymbol
	Similarity float64 `gorm:"column:similarity"`
}

type ISymbolRepository interface {
	Insert(ctx context.Context, symbol *db_models.DreamSymbol) error
	SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]SymbolMatch, error)
}

type symbolRepository struct {
	db *gorm.DB
}

func NewSymbolRepository(db *gorm.DB) ISymbolRepository {
	return &symbolRepository{db: db}
}

func (s *symbolRepository) Insert(ctx context.Context, symbol *db_models.DreamSymbol) error {
	return s.db.WithContext(ctx).Create(symbol).Error
}

func (s *symbolRepository) SearchByVector(ctx context.Context, vector pgvector.Vector, limit int) ([]SymbolMatch, error) {
	if limit <= 0 {
		limit = 10
	}

	var results []SymbolMatch

	query := `
        SELECT *, (1 - (embedding <=> $1)) AS similarity
        FROM dream_symbols
        WHERE (1 - (embedding <=> $1)) > 0.5
        ORDER BY embedding <=> $1
        LIMIT $2
    `

	err := s.db.WithContext(ctx).Raw(query, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
