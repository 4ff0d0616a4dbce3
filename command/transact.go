package command

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-discovery/pkg/types"
	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

// TransactInput captures a mutation routed through a registered invoker.
type TransactInput struct {
	Key    string
	Method string
	Query  any
	Data   any
	Result *TransactResult
}

// TransactResult receives the invoker output when supplied on the input.
type TransactResult struct {
	ID          uuid.UUID
	Data        any
	CompletedAt time.Time
}

// Type implements gocommand.Message.
func (TransactInput) Type() string {
	return "command.invoker.transact"
}

// Validate implements gocommand.Message.
func (input TransactInput) Validate() error {
	if input.Key == "" {
		return ErrKeyRequired
	}
	if strings.TrimSpace(input.Method) == "" {
		return ErrMethodRequired
	}
	return nil
}

// TransactCommandConfig wires the transact handler.
type TransactCommandConfig struct {
	Registry types.InvokerLocator
	// TxRunner opens transactions for keys without an entry in TxRunners.
	TxRunner  types.TxRunner
	TxRunners map[string]types.TxRunner
	Hooks     types.Hooks
	Clock     types.Clock
	IDGen     types.IDGenerator
	Logger    types.Logger
}

// TransactCommand resolves an invoker and applies a method inside a
// transaction owned by the configured runner.
type TransactCommand struct {
	registry  types.InvokerLocator
	txRunner  types.TxRunner
	txRunners map[string]types.TxRunner
	hooks     types.Hooks
	clock     types.Clock
	idGen     types.IDGenerator
	logger    types.Logger
}

// NewTransactCommand constructs the transact handler.
func NewTransactCommand(cfg TransactCommandConfig) *TransactCommand {
	runners := make(map[string]types.TxRunner, len(cfg.TxRunners))
	for key, runner := range cfg.TxRunners {
		if runner != nil {
			runners[key] = runner
		}
	}
	return &TransactCommand{
		registry:  cfg.Registry,
		txRunner:  cfg.TxRunner,
		txRunners: runners,
		hooks:     cfg.Hooks,
		clock:     safeClock(cfg.Clock),
		idGen:     safeIDGenerator(cfg.IDGen),
		logger:    safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[TransactInput] = (*TransactCommand)(nil)

// Execute runs input.Method through the invoker bound to input.Key. The
// transaction commits only when the invoker succeeds.
func (c *TransactCommand) Execute(ctx context.Context, input TransactInput) error {
	if err := input.Validate(); err != nil {
		return err
	}
	key := input.Key
	inv, err := lookupInvoker(c.registry, key)
	if err != nil {
		return err
	}
	runner := c.runnerFor(key)
	if runner == nil {
		return types.ErrMissingTxRunner
	}

	var out any
	err = runner.RunInTx(ctx, func(ctx context.Context, tx any) error {
		var txErr error
		out, txErr = inv.Transact(ctx, input.Method, input.Query, tx, input.Data)
		return txErr
	})
	if err != nil {
		c.logger.Error("invoker transact failed", err, "key", key, "method", input.Method)
		return err
	}

	event := types.TransactEvent{
		ID:         c.idGen.UUID(),
		Key:        key,
		Method:     input.Method,
		Query:      input.Query,
		Result:     out,
		OccurredAt: now(c.clock),
	}
	if input.Result != nil {
		*input.Result = TransactResult{
			ID:          event.ID,
			Data:        out,
			CompletedAt: event.OccurredAt,
		}
	}
	emitTransactHook(ctx, c.hooks, event)
	return nil
}

func (c *TransactCommand) runnerFor(key string) types.TxRunner {
	if runner, ok := c.txRunners[key]; ok {
		return runner
	}
	return c.txRunner
}
