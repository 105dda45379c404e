package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MeteredAction string

const (
	ActionDream          MeteredAction = "dream"
	ActionInterpretation MeteredAction = "interpretation"
	ActionTranscription  MeteredAction = "transcription"
	ActionExport         MeteredAction = "export"
)

// UsageLog is one row per performed metered action. Rows are append-only:
// never updated, never deleted, so there is deliberately no BaseModel here —
// a soft-delete column would let counts drift under gorm's default scopes.
type UsageLog struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID     `gorm:"index:idx_usage_account_action"`
	Action    MeteredAction `gorm:"type:varchar(24);index:idx_usage_account_action"`
	CreatedAt int64         `gorm:"index"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

func (u *UsageLog) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt == 0 {
		u.CreatedAt = time.Now().Unix()
	}
	return nil
}
