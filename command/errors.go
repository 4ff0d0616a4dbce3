package command

import "github.com/goliatone/go-discovery/pkg/types"

var (
	// ErrKeyRequired indicates the command omitted the invoker key.
	ErrKeyRequired = types.ErrKeyRequired
	// ErrMethodRequired indicates the transact command omitted the method name.
	ErrMethodRequired = types.ErrMethodRequired
	// ErrInvokerNotFound indicates no invoker is bound to the requested key.
	ErrInvokerNotFound = types.ErrInvokerNotFound
)
