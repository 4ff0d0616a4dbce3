package invoker

import (
	"context"
	"errors"
)

// ErrNotImplemented is returned by Funcs when the requested operation has no
// function wired.
var ErrNotImplemented = errors.New("go-discovery: invoker operation not implemented")

// Invoker is the typed repository contract. Q is the query descriptor, M the
// model, and T the transaction handle of the underlying storage.
type Invoker[Q, M, T any] interface {
	// Get returns the single model addressed by query. Read only.
	Get(ctx context.Context, query Q) (M, error)
	// List returns every model addressed by query. Read only.
	List(ctx context.Context, query Q) ([]M, error)
	// Validate fetches the model addressed by query and evaluates check.
	Validate(ctx context.Context, query Q, check func(M) bool) (bool, error)
	// Transact applies method within tx. data is the zero M when omitted.
	Transact(ctx context.Context, method string, query Q, tx T, data M) (M, error)
}

// Funcs adapts plain functions to Invoker. Nil fields report ErrNotImplemented.
type Funcs[Q, M, T any] struct {
	GetFn      func(ctx context.Context, query Q) (M, error)
	ListFn     func(ctx context.Context, query Q) ([]M, error)
	ValidateFn func(ctx context.Context, query Q, check func(M) bool) (bool, error)
	TransactFn func(ctx context.Context, method string, query Q, tx T, data M) (M, error)
}

var _ Invoker[any, any, any] = Funcs[any, any, any]{}

// Get implements Invoker.
func (f Funcs[Q, M, T]) Get(ctx context.Context, query Q) (M, error) {
	if f.GetFn == nil {
		var zero M
		return zero, ErrNotImplemented
	}
	return f.GetFn(ctx, query)
}

// List implements Invoker.
func (f Funcs[Q, M, T]) List(ctx context.Context, query Q) ([]M, error) {
	if f.ListFn == nil {
		return nil, ErrNotImplemented
	}
	return f.ListFn(ctx, query)
}

// Validate implements Invoker. Without ValidateFn it falls back to GetFn.
func (f Funcs[Q, M, T]) Validate(ctx context.Context, query Q, check func(M) bool) (bool, error) {
	if f.ValidateFn != nil {
		return f.ValidateFn(ctx, query, check)
	}
	if f.GetFn == nil {
		return false, ErrNotImplemented
	}
	model, err := f.GetFn(ctx, query)
	if err != nil {
		return false, err
	}
	return check(model), nil
}

// Transact implements Invoker.
func (f Funcs[Q, M, T]) Transact(ctx context.Context, method string, query Q, tx T, data M) (M, error) {
	if f.TransactFn == nil {
		var zero M
		return zero, ErrNotImplemented
	}
	return f.TransactFn(ctx, method, query, tx, data)
}
