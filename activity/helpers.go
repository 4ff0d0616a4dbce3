package activity

import (
	"time"

	"github.com/goliatone/go-discovery/pkg/types"
	"github.com/uptrace/bun"
)

func whereEntries(q *bun.SelectQuery, keys, verbs []string, since, until *time.Time) *bun.SelectQuery {
	if keys = normalizeIdentifiers(keys); len(keys) > 0 {
		q = q.Where("invoker_key IN (?)", bun.In(keys))
	}
	if verbs = normalizeIdentifiers(verbs); len(verbs) > 0 {
		q = q.Where("verb IN (?)", bun.In(verbs))
	}
	if since != nil && !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if until != nil && !until.IsZero() {
		q = q.Where("created_at <= ?", until)
	}
	return q
}

func normalizeIdentifiers(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func normalizePagination(p types.Pagination, def, max int) types.Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
