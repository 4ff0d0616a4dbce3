package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	// ActivityVerbRegistered is logged after an invoker is bound to a key.
	ActivityVerbRegistered = "invoker.registered"
	// ActivityVerbTransacted is logged after a transaction method commits.
	ActivityVerbTransacted = "invoker.transacted"
)

// Pagination supports query pagination across activity feeds.
type Pagination struct {
	Limit  int
	Offset int
}

// ActivityRecord describes sink inputs and is shared across sink and query layers.
type ActivityRecord struct {
	ID         uuid.UUID
	Verb       string
	Key        string
	Method     string
	Data       map[string]any
	OccurredAt time.Time
}

// ActivitySink is the minimal contract for emitting invoker activity.
type ActivitySink interface {
	Log(context.Context, ActivityRecord) error
}

// ActivityRepository exposes read-side access to activity logs.
type ActivityRepository interface {
	ListActivity(ctx context.Context, filter ActivityFilter) (ActivityPage, error)
	ActivityStats(ctx context.Context, filter ActivityStatsFilter) (ActivityStats, error)
}

// ActivityFilter narrows activity feed queries.
type ActivityFilter struct {
	Keys       []string
	Verbs      []string
	Method     string
	Since      *time.Time
	Until      *time.Time
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (ActivityFilter) Type() string {
	return "query.activity.feed"
}

// Validate implements gocommand.Message.
func (filter ActivityFilter) Validate() error {
	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		return ErrInvalidTimeRange
	}
	return nil
}

// ActivityPage represents a paginated feed response.
type ActivityPage struct {
	Records    []ActivityRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// ActivityStatsFilter scopes aggregate activity queries.
type ActivityStatsFilter struct {
	Keys  []string
	Since *time.Time
	Until *time.Time
	Verbs []string
}

// Type implements gocommand.Message for query inputs.
func (ActivityStatsFilter) Type() string {
	return "query.activity.stats"
}

// Validate implements gocommand.Message.
func (filter ActivityStatsFilter) Validate() error {
	if filter.Since != nil && filter.Until != nil && filter.Until.Before(*filter.Since) {
		return ErrInvalidTimeRange
	}
	return nil
}

// ActivityStats summarizes activity counts per verb.
type ActivityStats struct {
	Total  int
	ByVerb map[string]int
}
