package invoker

import (
	"context"
	"sync"

	"github.com/goliatone/go-discovery/pkg/types"
	"golang.org/x/sync/errgroup"
)

// Result carries the outcome of a deferred operation.
type Result[V any] struct {
	Value V
	Err   error
}

// Check is a deferred validation bound to an invoker and query.
type Check func(ctx context.Context) (bool, error)

// GetOne retrieves a single model of type M.
func GetOne[M any](ctx context.Context, inv types.RepositoryInvoker, query any) (M, error) {
	var zero M
	out, err := inv.Get(ctx, query, false)
	if err != nil {
		return zero, err
	}
	return cast[M](out, types.ErrModelType, "result")
}

// GetMany retrieves a collection of models of type M.
func GetMany[M any](ctx context.Context, inv types.RepositoryInvoker, query any) ([]M, error) {
	out, err := inv.Get(ctx, query, true)
	if err != nil {
		return nil, err
	}
	return cast[[]M](out, types.ErrModelType, "result")
}

// Validate evaluates check over the data addressed by query. Data that is not
// an M fails the check and reports types.ErrModelType.
func Validate[M any](ctx context.Context, inv types.RepositoryInvoker, query any, check func(M) bool) (bool, error) {
	if check == nil {
		return false, types.ErrCheckRequired
	}
	var (
		mu         sync.Mutex
		wrongShape bool
		actual     any
	)
	ok, err := inv.Validate(ctx, query, func(data any) bool {
		var model M
		if data != nil {
			typed, isM := data.(M)
			if !isM {
				mu.Lock()
				wrongShape, actual = true, data
				mu.Unlock()
				return false
			}
			model = typed
		}
		return check(model)
	})
	if err != nil {
		return false, err
	}
	mu.Lock()
	defer mu.Unlock()
	if wrongShape {
		var zero M
		return false, mismatch(types.ErrModelType, "data", zero, actual)
	}
	return ok, nil
}

// ValidateAsync runs Validate on its own goroutine. The channel receives
// exactly one Result and is then closed.
func ValidateAsync[M any](ctx context.Context, inv types.RepositoryInvoker, query any, check func(M) bool) <-chan Result[bool] {
	out := make(chan Result[bool], 1)
	go func() {
		defer close(out)
		ok, err := Validate(ctx, inv, query, check)
		out <- Result[bool]{Value: ok, Err: err}
	}()
	return out
}

// Bind prepares a Check for ValidateAll.
func Bind[M any](inv types.RepositoryInvoker, query any, check func(M) bool) Check {
	return func(ctx context.Context) (bool, error) {
		return Validate(ctx, inv, query, check)
	}
}

// ValidateAll runs every check concurrently and reports whether all of them
// hold. The first error cancels the remaining checks.
func ValidateAll(ctx context.Context, checks ...Check) (bool, error) {
	if len(checks) == 0 {
		return true, nil
	}
	for _, check := range checks {
		if check == nil {
			return false, types.ErrCheckRequired
		}
	}
	results := make([]bool, len(checks))
	group, gctx := errgroup.WithContext(ctx)
	for i, check := range checks {
		group.Go(func() error {
			ok, err := check(gctx)
			if err != nil {
				return err
			}
			results[i] = ok
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return false, err
	}
	for _, ok := range results {
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Transact applies method through inv and returns the result as an M.
func Transact[M any](ctx context.Context, inv types.RepositoryInvoker, method string, query, tx, data any) (M, error) {
	var zero M
	out, err := inv.Transact(ctx, method, query, tx, data)
	if err != nil {
		return zero, err
	}
	return cast[M](out, types.ErrModelType, "result")
}
