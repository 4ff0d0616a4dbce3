package query

import (
	"context"

	"github.com/goliatone/go-discovery/pkg/types"
	gocommand "github.com/goliatone/go-command"
)

// GetInput addresses a read routed through a registered invoker.
type GetInput struct {
	Key        string
	Query      any
	Collection bool
}

// Type implements gocommand.Message.
func (GetInput) Type() string {
	return "query.invoker.get"
}

// Validate implements gocommand.Message.
func (input GetInput) Validate() error {
	if input.Key == "" {
		return types.ErrKeyRequired
	}
	return nil
}

// GetQuery resolves an invoker by key and delegates to its Get method.
type GetQuery struct {
	registry types.InvokerLocator
	logger   types.Logger
}

// NewGetQuery constructs the get query helper.
func NewGetQuery(registry types.InvokerLocator, logger types.Logger) *GetQuery {
	return &GetQuery{
		registry: registry,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[GetInput, any] = (*GetQuery)(nil)

// Query returns a single model, or a slice when input.Collection is set.
func (q *GetQuery) Query(ctx context.Context, input GetInput) (any, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	inv, err := lookupInvoker(q.registry, input.Key)
	if err != nil {
		return nil, err
	}
	out, err := inv.Get(ctx, input.Query, input.Collection)
	if err != nil {
		q.logger.Debug("invoker get failed", "key", input.Key, "collection", input.Collection, "error", err)
		return nil, err
	}
	return out, nil
}

// ValidateInput addresses a predicate check routed through a registered invoker.
type ValidateInput struct {
	Key   string
	Query any
	Check func(any) bool
}

// Type implements gocommand.Message.
func (ValidateInput) Type() string {
	return "query.invoker.validate"
}

// Validate implements gocommand.Message.
func (input ValidateInput) Validate() error {
	if input.Key == "" {
		return types.ErrKeyRequired
	}
	if input.Check == nil {
		return types.ErrCheckRequired
	}
	return nil
}

// ValidateQuery resolves an invoker by key and evaluates a predicate against
// the data it returns.
type ValidateQuery struct {
	registry types.InvokerLocator
	logger   types.Logger
}

// NewValidateQuery constructs the validate query helper.
func NewValidateQuery(registry types.InvokerLocator, logger types.Logger) *ValidateQuery {
	return &ValidateQuery{
		registry: registry,
		logger:   safeLogger(logger),
	}
}

var _ gocommand.Querier[ValidateInput, bool] = (*ValidateQuery)(nil)

// Query reports whether input.Check holds for the addressed data.
func (q *ValidateQuery) Query(ctx context.Context, input ValidateInput) (bool, error) {
	if err := input.Validate(); err != nil {
		return false, err
	}
	inv, err := lookupInvoker(q.registry, input.Key)
	if err != nil {
		return false, err
	}
	ok, err := inv.Validate(ctx, input.Query, input.Check)
	if err != nil {
		q.logger.Debug("invoker validate failed", "key", input.Key, "error", err)
		return false, err
	}
	return ok, nil
}
