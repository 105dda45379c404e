package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dreamoracle/internal/models/db_models"
)

type DreamFilter struct {
	Mood string
	Tag  string
}

type IDreamRepository interface {
	Insert(ctx context.Context, dream *db_models.Dream) error
	FindById(ctx context.Context, accountID uuid.UUID, dreamID string) (*db_models.Dream, error)
	List(ctx context.Context, accountID uuid.UUID, filter DreamFilter, offset, limit int) ([]db_models.Dream, int64, error)
	ListAll(ctx context.Context, accountID uuid.UUID) ([]db_models.Dream, error)
	Update(ctx context.Context, dream *db_models.Dream) error
	Delete(ctx context.Context, accountID uuid.UUID, dreamID string) error

	InsertInterpretation(ctx context.Context, interpretation *db_models.Interpretation) error
}

type dreamRepository struct {
	db *gorm.DB
}

func NewDreamRepository(db *gorm.DB) IDreamRepository {
	return &dreamRepository{db: db}
}

func (d *dreamRepository) Insert(ctx context.Context, dream *db_models.Dream) error {
	return d.db.WithContext(ctx).Create(dream).Error
}

func (d *dreamRepository) FindById(ctx context.Context, accountID uuid.UUID, dreamID string) (*db_models.Dream, error) {
	var dream db_models.Dream
	err := d.db.WithContext(ctx).
		Preload("Interpretations").
		First(&dream, "id = ? AND account_id = ?", dreamID, accountID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &dream, nil
}

func (d *dreamRepository) List(ctx context.Context, accountID uuid.UUID, filter DreamFilter, offset, limit int) ([]db_models.Dream, int64, error) {
	query := d.db.WithContext(ctx).
		Model(&db_models.Dream{}).
		Where("account_id = ?", accountID)

	if filter.Mood != "" {
		query = query.Where("mood = ?", filter.Mood)
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(tags)", filter.Tag)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var dreams []db_models.Dream
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&dreams).Error

	if err != nil {
		return nil, 0, err
	}

	return dreams, total, nil
}

func (d *dreamRepository) ListAll(ctx context.Context, accountID uuid.UUID) ([]db_models.Dream, error) {
	var dreams []db_models.Dream
	err := d.db.WithContext(ctx).
		Preload("Interpretations").
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&dreams).Error

	if err != nil {
		return nil, err
	}

	return dreams, nil
}

func (d *dreamRepository) Update(ctx context.Context, dream *db_models.Dream) error {
	return d.db.WithContext(ctx).Save(dream).Error
}

func (d *dreamRepository) Delete(ctx context.Context, accountID uuid.UUID, dreamID string) error {
	result := d.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", dreamID, accountID).
		Delete(&db_models.Dream{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (d *dreamRepository) InsertInterpretation(ctx context.Context, interpretation *db_models.Interpretation) error {
	return d.db.WithContext(ctx).Create(interpretation).Error
}
