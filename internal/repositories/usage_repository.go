package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"dreamoracle/internal/models/db_models"
)

// UsageRepository is the append-only ledger of metered actions. Record must be
// visible to a CountSince issued right after it on the same request, which
// holds here because both hit the same database through the same pool.
type UsageRepository interface {
	Record(ctx context.Context, accountID uuid.UUID, action db_models.MeteredAction, metadata datatypes.JSON) error
	CountSince(ctx context.Context, accountID uuid.UUID, action db_models.MeteredAction, since int64) (int64, error)
}

type usageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) UsageRepository {
	return &usageRepository{db: db}
}

func (u *usageRepository) Record(ctx context.Context, accountID uuid.UUID, action db_models.MeteredAction, metadata datatypes.JSON) error {
	entry := db_models.UsageLog{
		AccountID: accountID,
		Action:    action,
		Metadata:  metadata,
	}
	return u.db.WithContext(ctx).Create(&entry).Error
}

func (u *usageRepository) CountSince(ctx context.Context, accountID uuid.UUID, action db_models.MeteredAction, since int64) (int64, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&db_models.UsageLog{}).
		Where("account_id = ? AND action = ? AND created_at >= ?", accountID, action, since).
		Count(&count).Error

	if err != nil {
		return 0, err
	}

	return count, nil
}
