package query

import (
	"context"

	"github.com/goliatone/go-discovery/pkg/types"
	gocommand "github.com/goliatone/go-command"
)

// ActivityFeedQuery renders paginated invoker activity feeds.
type ActivityFeedQuery struct {
	repo types.ActivityRepository
}

// NewActivityFeedQuery constructs the feed query helper.
func NewActivityFeedQuery(repo types.ActivityRepository) *ActivityFeedQuery {
	return &ActivityFeedQuery{repo: repo}
}

var _ gocommand.Querier[types.ActivityFilter, types.ActivityPage] = (*ActivityFeedQuery)(nil)

// Query fetches a page of activity logs via the injected repository.
func (q *ActivityFeedQuery) Query(ctx context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	if q.repo == nil {
		return types.ActivityPage{}, types.ErrMissingActivityRepository
	}
	if err := filter.Validate(); err != nil {
		return types.ActivityPage{}, err
	}
	return q.repo.ListActivity(ctx, filter)
}

// ActivityStatsQuery aggregates activity counts per verb.
type ActivityStatsQuery struct {
	repo types.ActivityRepository
}

// NewActivityStatsQuery constructs the stats helper.
func NewActivityStatsQuery(repo types.ActivityRepository) *ActivityStatsQuery {
	return &ActivityStatsQuery{repo: repo}
}

var _ gocommand.Querier[types.ActivityStatsFilter, types.ActivityStats] = (*ActivityStatsQuery)(nil)

// Query returns aggregate counts per verb.
func (q *ActivityStatsQuery) Query(ctx context.Context, filter types.ActivityStatsFilter) (types.ActivityStats, error) {
	if q.repo == nil {
		return types.ActivityStats{}, types.ErrMissingActivityRepository
	}
	if err := filter.Validate(); err != nil {
		return types.ActivityStats{}, err
	}
	return q.repo.ActivityStats(ctx, filter)
}
