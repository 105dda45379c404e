package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Interpretation struct {
	BaseModel
	DreamID   uuid.UUID `gorm:"index"`
	AccountID uuid.UUID `gorm:"index"`

	Provider string // "openai" | "gemini"
	Model    string

	Summary  string         `gorm:"type:text"`
	Symbols  datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	Emotions pq.StringArray `gorm:"type:text[]"`
	Guidance string         `gorm:"type:text"`

	Dream Dream `gorm:"foreignKey:DreamID"`
}
