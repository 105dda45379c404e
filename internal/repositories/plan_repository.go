package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dreamoracle/internal/models/db_models"
)

type IPlanRepository interface {
	GetPlanByCode(ctx context.Context, code string) (*db_models.Plan, error)
	GetActivePlans(ctx context.Context) ([]db_models.Plan, error)
}

type planRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) IPlanRepository {
	return &planRepository{db: db}
}

func (p *planRepository) GetPlanByCode(ctx context.Context, code string) (*db_models.Plan, error) {
	var plan db_models.Plan
	err := p.db.WithContext(ctx).First(&plan, "code = ? AND is_active = TRUE", code).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &plan, nil
}

func (p *planRepository) GetActivePlans(ctx context.Context) ([]db_models.Plan, error) {
	var plans []db_models.Plan
	err := p.db.WithContext(ctx).
		Where("is_active = TRUE").
		Order("price_minor ASC").
		Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}
