package command

import (
	"context"
	"time"

	"github.com/goliatone/go-discovery/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeIDGenerator(gen types.IDGenerator) types.IDGenerator {
	if gen != nil {
		return gen
	}
	return types.UUIDGenerator{}
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func emitTransactHook(ctx context.Context, hooks types.Hooks, event types.TransactEvent) {
	if hooks.AfterTransact == nil {
		return
	}
	hooks.AfterTransact(ctx, event)
}

func lookupInvoker(locator types.InvokerLocator, key string) (types.RepositoryInvoker, error) {
	if locator == nil {
		return nil, goerrors.Wrap(types.ErrMissingRegistry, goerrors.CategoryInternal, "invoker registry not wired").
			WithCode(goerrors.CodeInternal)
	}
	inv, ok := locator.Lookup(key)
	if !ok {
		return nil, goerrors.Wrap(ErrInvokerNotFound, goerrors.CategoryNotFound, "invoker not registered").
			WithCode(goerrors.CodeNotFound).
			WithMetadata(map[string]any{"key": key})
	}
	return inv, nil
}
