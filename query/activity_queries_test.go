package query

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-discovery/pkg/types"
	"github.com/stretchr/testify/require"
)

func TestActivityFeedQuery_DelegatesToRepository(t *testing.T) {
	repo := &fakeActivityRepo{
		page: types.ActivityPage{Records: []types.ActivityRecord{{Key: "orders"}}, Total: 1},
	}
	q := NewActivityFeedQuery(repo)

	page, err := q.Query(context.Background(), types.ActivityFilter{Keys: []string{"orders"}})
	require.NoError(t, err)
	require.Equal(t, repo.page, page)
	require.Equal(t, []string{"orders"}, repo.feedFilter.Keys)
}

func TestActivityQueries_RejectInvalidRange(t *testing.T) {
	since := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	until := since.Add(-time.Hour)
	repo := &fakeActivityRepo{}

	_, err := NewActivityFeedQuery(repo).Query(context.Background(), types.ActivityFilter{Since: &since, Until: &until})
	require.ErrorIs(t, err, types.ErrInvalidTimeRange)

	_, err = NewActivityStatsQuery(repo).Query(context.Background(), types.ActivityStatsFilter{Since: &since, Until: &until})
	require.ErrorIs(t, err, types.ErrInvalidTimeRange)
	require.False(t, repo.called)
}

func TestActivityQueries_RequireRepository(t *testing.T) {
	_, err := NewActivityFeedQuery(nil).Query(context.Background(), types.ActivityFilter{})
	require.ErrorIs(t, err, types.ErrMissingActivityRepository)

	_, err = NewActivityStatsQuery(nil).Query(context.Background(), types.ActivityStatsFilter{})
	require.ErrorIs(t, err, types.ErrMissingActivityRepository)
}

type fakeActivityRepo struct {
	called     bool
	page       types.ActivityPage
	feedFilter types.ActivityFilter
}

func (f *fakeActivityRepo) ListActivity(_ context.Context, filter types.ActivityFilter) (types.ActivityPage, error) {
	f.called = true
	f.feedFilter = filter
	return f.page, nil
}

func (f *fakeActivityRepo) ActivityStats(context.Context, types.ActivityStatsFilter) (types.ActivityStats, error) {
	f.called = true
	return types.ActivityStats{ByVerb: map[string]int{}}, nil
}
