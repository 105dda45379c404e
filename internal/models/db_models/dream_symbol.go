package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// DreamSymbol is one entry of the symbol dictionary. Embeddings are generated
// offline from the meaning text and queried by cosine distance.
type DreamSymbol struct {
	BaseModel
	Name       string         `gorm:"uniqueIndex"`
	Meaning    string         `gorm:"type:text"`
	Categories pq.StringArray `gorm:"type:text[]"`

	Embedding pgvector.Vector `gorm:"type:vector(1536)"`
}
