package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Dream struct {
	BaseModel
	AccountID uuid.UUID `gorm:"index"`

	Title     string
	Narrative string `gorm:"type:text"`
	Mood      string `gorm:"index"`
	Lucid     bool
	Recurring bool

	// Sleep window (unix seconds); optional, the mobile client may omit both.
	SleptAt *int64
	WokeAt  *int64

	Tags pq.StringArray `gorm:"type:text[]"`

	Interpretations []Interpretation

	Account Account `gorm:"foreignKey:AccountID"`
}
