package activity

import (
	"context"
	"errors"

	"github.com/goliatone/go-discovery/pkg/types"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	defaultFeedLimit = 50
	maxFeedLimit     = 200
)

// Journal stores invoker activity in the invoker_activity table. It is both
// the write sink used by Hooks and the read model behind the activity queries.
type Journal struct {
	entries repository.Repository[*LogEntry]
	clock   types.Clock
	idGen   types.IDGenerator
}

var (
	_ types.ActivitySink       = (*Journal)(nil)
	_ types.ActivityRepository = (*Journal)(nil)
)

// Option customizes a Journal.
type Option func(*Journal)

// WithRepository supplies the entry repository, e.g. one decorated with
// go-repository-cache or scoped by the host.
func WithRepository(repo repository.Repository[*LogEntry]) Option {
	return func(j *Journal) {
		if repo != nil {
			j.entries = repo
		}
	}
}

// WithClock stamps entries logged without an OccurredAt.
func WithClock(clock types.Clock) Option {
	return func(j *Journal) {
		if clock != nil {
			j.clock = clock
		}
	}
}

// WithIDGenerator assigns IDs to entries logged without one.
func WithIDGenerator(gen types.IDGenerator) Option {
	return func(j *Journal) {
		if gen != nil {
			j.idGen = gen
		}
	}
}

// NewJournal builds a journal over db. db may be nil when WithRepository is
// given.
func NewJournal(db *bun.DB, opts ...Option) (*Journal, error) {
	j := &Journal{
		clock: types.SystemClock{},
		idGen: types.UUIDGenerator{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(j)
		}
	}
	if j.entries == nil {
		if db == nil {
			return nil, errors.New("activity: db or repository required")
		}
		j.entries = repository.NewRepository(db, entryHandlers())
	}
	return j, nil
}

func entryHandlers() repository.ModelHandlers[*LogEntry] {
	return repository.ModelHandlers[*LogEntry]{
		NewRecord: func() *LogEntry { return &LogEntry{} },
		GetID: func(entry *LogEntry) uuid.UUID {
			if entry == nil {
				return uuid.Nil
			}
			return entry.ID
		},
		SetID: func(entry *LogEntry, id uuid.UUID) {
			if entry != nil {
				entry.ID = id
			}
		},
	}
}

// CreateSchema creates the invoker_activity table when it does not exist.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if db == nil {
		return errors.New("activity: schema requires bun DB")
	}
	_, err := db.NewCreateTable().Model((*LogEntry)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Log appends record to the journal.
func (j *Journal) Log(ctx context.Context, record types.ActivityRecord) error {
	entry := &LogEntry{
		ID:        record.ID,
		Verb:      record.Verb,
		Key:       record.Key,
		Method:    record.Method,
		Data:      cloneMap(record.Data),
		CreatedAt: record.OccurredAt,
	}
	if entry.ID == uuid.Nil {
		entry.ID = j.idGen.UUID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = j.clock.Now()
	}
	_, err := j.entries.Create(ctx, entry)
	return err
}

// ListActivity returns entries newest first.
func (j *Journal) ListActivity(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	page := normalizePagination(filter.Pagination, defaultFeedLimit, maxFeedLimit)
	rows, total, err := j.entries.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = whereEntries(q, filter.Keys, filter.Verbs, filter.Since, filter.Until)
		if filter.Method != "" {
			q = q.Where("method = ?", filter.Method)
		}
		return q.OrderExpr("created_at DESC").Limit(page.Limit).Offset(page.Offset)
	})
	if err != nil {
		return types.ActivityPage{}, err
	}

	records := make([]types.ActivityRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	next := page.Offset + len(rows)
	return types.ActivityPage{
		Records:    records,
		Total:      total,
		NextOffset: next,
		HasMore:    next < total,
	}, nil
}

// ActivityStats counts matching entries per verb. Only the verb column is
// loaded.
func (j *Journal) ActivityStats(ctx context.Context, filter types.ActivityStatsFilter) (types.ActivityStats, error) {
	stats := types.ActivityStats{ByVerb: make(map[string]int)}
	rows, _, err := j.entries.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return whereEntries(q.Column("verb"), filter.Keys, filter.Verbs, filter.Since, filter.Until)
	})
	if err != nil {
		return stats, err
	}
	for _, row := range rows {
		stats.ByVerb[row.Verb]++
	}
	stats.Total = len(rows)
	return stats, nil
}

func (e *LogEntry) record() types.ActivityRecord {
	return types.ActivityRecord{
		ID:         e.ID,
		Verb:       e.Verb,
		Key:        e.Key,
		Method:     e.Method,
		Data:       cloneMap(e.Data),
		OccurredAt: e.CreatedAt,
	}
}
