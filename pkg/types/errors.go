package types

import "errors"

var (
	// ErrKeyRequired occurs when a lookup or command omits the invoker key.
	ErrKeyRequired = errors.New("go-discovery: invoker key required")
	// ErrInvokerNotFound occurs when no invoker is bound to the requested key.
	ErrInvokerNotFound = errors.New("go-discovery: invoker not registered")
	// ErrMissingRegistry occurs when a handler is wired without a registry.
	ErrMissingRegistry = errors.New("go-discovery: missing invoker registry")
	// ErrMissingTxRunner occurs when a transact handler has no transaction runner.
	ErrMissingTxRunner = errors.New("go-discovery: missing transaction runner")
	// ErrTransactionRequired occurs when Transact is called without a handle.
	ErrTransactionRequired = errors.New("go-discovery: transaction handle required")
	// ErrMethodRequired occurs when Transact is called without a method name.
	ErrMethodRequired = errors.New("go-discovery: transaction method required")
	// ErrUnknownMethod occurs when an adapter does not support the requested method.
	ErrUnknownMethod = errors.New("go-discovery: unknown transaction method")
	// ErrQueryType occurs when the query shape does not match the adapter.
	ErrQueryType = errors.New("go-discovery: unexpected query type")
	// ErrModelType occurs when data or results do not match the expected model.
	ErrModelType = errors.New("go-discovery: unexpected model type")
	// ErrTransactionType occurs when the handle does not match the adapter storage.
	ErrTransactionType = errors.New("go-discovery: unexpected transaction type")
	// ErrCheckRequired occurs when Validate is called without a predicate.
	ErrCheckRequired = errors.New("go-discovery: validation check required")
	// ErrRecordNotFound is returned by adapters when a query matches nothing.
	ErrRecordNotFound = errors.New("go-discovery: record not found")
	// ErrMissingActivityRepository occurs when activity queries run without a repository.
	ErrMissingActivityRepository = errors.New("go-discovery: missing activity repository")
	// ErrInvalidTimeRange occurs when an activity filter ends before it starts.
	ErrInvalidTimeRange = errors.New("go-discovery: until must not precede since")
)
