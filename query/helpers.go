package query

import (
	"github.com/goliatone/go-discovery/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

func safeLogger(logger types.Logger) types.Logger {
	if logger == nil {
		return types.NopLogger{}
	}
	return logger
}

func lookupInvoker(locator types.InvokerLocator, key string) (types.RepositoryInvoker, error) {
	if locator == nil {
		return nil, goerrors.Wrap(types.ErrMissingRegistry, goerrors.CategoryInternal, "invoker registry not wired").
			WithCode(goerrors.CodeInternal)
	}
	inv, ok := locator.Lookup(key)
	if !ok {
		return nil, goerrors.Wrap(types.ErrInvokerNotFound, goerrors.CategoryNotFound, "invoker not registered").
			WithCode(goerrors.CodeNotFound).
			WithMetadata(map[string]any{"key": key})
	}
	return inv, nil
}
