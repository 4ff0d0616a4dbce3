package types

import "context"

// RepositoryInvoker is the uniform contract every registered adapter exposes.
// Query and model shapes are adapter specific, so they travel as `any` here;
// see the invoker package for the typed side and call-site helpers.
//
// Reads (Get, Validate) never require a transaction. Every mutation goes
// through Transact with an explicit, adapter specific transaction handle.
type RepositoryInvoker interface {
	// Get returns a single model, or a slice of models when collection is true.
	Get(ctx context.Context, query any, collection bool) (any, error)
	// Validate fetches the data addressed by query and reports whether check
	// holds for it.
	Validate(ctx context.Context, query any, check func(any) bool) (bool, error)
	// Transact applies method inside tx and returns the resulting data. Commit
	// and rollback belong to whoever owns tx.
	Transact(ctx context.Context, method string, query any, tx any, data any) (any, error)
}

// InvokerRegistration is implemented by registries that accept invokers.
type InvokerRegistration interface {
	Register(key string, inv RepositoryInvoker) bool
}

// InvokerLocator is implemented by registries that resolve invokers by key.
type InvokerLocator interface {
	Lookup(key string) (RepositoryInvoker, bool)
}

// InvokerRegistry combines registration and lookup.
type InvokerRegistry interface {
	InvokerRegistration
	InvokerLocator
}

// TxRunner opens a storage transaction, hands its opaque handle to fn, and
// commits when fn returns nil or rolls back otherwise.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx any) error) error
}

// TxRunnerFunc adapts a function to TxRunner.
type TxRunnerFunc func(ctx context.Context, fn func(ctx context.Context, tx any) error) error

// RunInTx implements TxRunner.
func (f TxRunnerFunc) RunInTx(ctx context.Context, fn func(ctx context.Context, tx any) error) error {
	return f(ctx, fn)
}

// Transaction methods understood by the bundled adapters.
const (
	MethodCreate = "create"
	MethodUpdate = "update"
	MethodDelete = "delete"
)
