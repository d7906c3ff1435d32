package bunstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewsDocument is the relational shape of one store document: the payload is
// kept as a JSON column, addressing and ordering live in dedicated columns.
type NewsDocument struct {
	bun.BaseModel `bun:"table:news_documents,alias:nd"`

	ID         uuid.UUID      `bun:",pk,type:uuid"                json:"id"`
	Collection string         `bun:"collection,notnull"           json:"collection"`
	Payload    map[string]any `bun:"payload,type:jsonb,notnull"   json:"payload"`
	Position   int64          `bun:"position,notnull,default:0"   json:"position"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// CreateTables provisions the backing table. Intended for tests and the demo;
// production deployments manage migrations themselves.
func CreateTables(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*NewsDocument)(nil)).IfNotExists().Exec(ctx)
	return err
}
