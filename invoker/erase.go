package invoker

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-discovery/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

// Erase wraps a typed invoker so it satisfies types.RepositoryInvoker and can
// be stored in a registry. Shape mismatches surface as types.ErrQueryType,
// types.ErrModelType, or types.ErrTransactionType.
func Erase[Q, M, T any](inv Invoker[Q, M, T]) types.RepositoryInvoker {
	if inv == nil {
		return nil
	}
	return &erased[Q, M, T]{typed: inv}
}

// As recovers the typed invoker previously passed to Erase.
func As[Q, M, T any](inv types.RepositoryInvoker) (Invoker[Q, M, T], bool) {
	e, ok := inv.(*erased[Q, M, T])
	if !ok {
		return nil, false
	}
	return e.typed, true
}

type erased[Q, M, T any] struct {
	typed Invoker[Q, M, T]
}

var _ types.RepositoryInvoker = (*erased[any, any, any])(nil)

func (e *erased[Q, M, T]) Get(ctx context.Context, query any, collection bool) (any, error) {
	q, err := cast[Q](query, types.ErrQueryType, "query")
	if err != nil {
		return nil, err
	}
	if collection {
		return e.typed.List(ctx, q)
	}
	return e.typed.Get(ctx, q)
}

func (e *erased[Q, M, T]) Validate(ctx context.Context, query any, check func(any) bool) (bool, error) {
	if check == nil {
		return false, types.ErrCheckRequired
	}
	q, err := cast[Q](query, types.ErrQueryType, "query")
	if err != nil {
		return false, err
	}
	return e.typed.Validate(ctx, q, func(model M) bool {
		return check(model)
	})
}

func (e *erased[Q, M, T]) Transact(ctx context.Context, method string, query any, tx any, data any) (any, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, types.ErrMethodRequired
	}
	if tx == nil {
		return nil, types.ErrTransactionRequired
	}
	q, err := cast[Q](query, types.ErrQueryType, "query")
	if err != nil {
		return nil, err
	}
	handle, err := cast[T](tx, types.ErrTransactionType, "transaction")
	if err != nil {
		return nil, err
	}
	model, err := cast[M](data, types.ErrModelType, "data")
	if err != nil {
		return nil, err
	}
	return e.typed.Transact(ctx, method, q, handle, model)
}

// cast asserts value to V. A nil value yields the zero V.
func cast[V any](value any, sentinel error, field string) (V, error) {
	var zero V
	if value == nil {
		return zero, nil
	}
	typed, ok := value.(V)
	if !ok {
		return zero, mismatch(sentinel, field, zero, value)
	}
	return typed, nil
}

func mismatch(sentinel error, field string, expected, actual any) error {
	return goerrors.Wrap(sentinel, goerrors.CategoryBadInput, field+" shape mismatch").
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(map[string]any{
			"field":    field,
			"expected": typeName(expected),
			"actual":   fmt.Sprintf("%T", actual),
		})
}

func typeName(v any) string {
	if v == nil {
		return "interface"
	}
	return fmt.Sprintf("%T", v)
}
