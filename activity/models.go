package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in invoker_activity.
type LogEntry struct {
	bun.BaseModel `bun:"table:invoker_activity"`

	ID        uuid.UUID      `bun:",pk,type:uuid"`
	Verb      string         `bun:"verb,notnull"`
	Key       string         `bun:"invoker_key,notnull"`
	Method    string         `bun:"method"`
	Data      map[string]any `bun:"data,type:jsonb"`
	CreatedAt time.Time      `bun:"created_at,notnull"`
}
