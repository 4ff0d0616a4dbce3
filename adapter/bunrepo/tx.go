package bunrepo

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-discovery/pkg/types"
	"github.com/uptrace/bun"
)

// TxRunner opens Bun transactions and passes the bun.Tx as the opaque handle.
// The transaction commits when the callback returns nil.
type TxRunner struct {
	DB      *bun.DB
	Options *sql.TxOptions
}

var _ types.TxRunner = TxRunner{}

// RunInTx implements types.TxRunner.
func (r TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, tx any) error) error {
	if r.DB == nil {
		return types.ErrMissingTxRunner
	}
	return r.DB.RunInTx(ctx, r.Options, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
