package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-discovery/invoker"
	"github.com/goliatone/go-discovery/pkg/types"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"
)

type customer struct {
	ID     string
	Name   string
	Active bool
}

func newCustomerStore() *Store[*customer] {
	return NewStore(Config[*customer]{
		IDOf: func(c *customer) string {
			if c == nil {
				return ""
			}
			return c.ID
		},
		AssignID: func(c *customer, id string) *customer {
			c.ID = id
			return c
		},
	})
}

func seed(t *testing.T, store *Store[*customer], records ...*customer) {
	t.Helper()
	err := store.RunInTx(context.Background(), func(ctx context.Context, tx any) error {
		for _, rec := range records {
			if _, err := store.Transact(ctx, types.MethodCreate, Query[*customer]{}, tx.(*Tx[*customer]), rec); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestStore_WritesBecomeVisibleOnCommit(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore()

	tx := store.Begin()
	created, err := store.Transact(ctx, "CREATE", Query[*customer]{}, tx, &customer{Name: "Ada"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = store.Get(ctx, Query[*customer]{ID: created.ID})
	require.ErrorIs(t, err, types.ErrRecordNotFound)

	require.NoError(t, tx.Commit())
	got, err := store.Get(ctx, Query[*customer]{ID: created.ID})
	require.NoError(t, err)
	require.Same(t, created, got)

	require.ErrorIs(t, tx.Commit(), ErrTxDone)
}

func TestStore_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore()
	boom := errors.New("boom")

	err := store.RunInTx(ctx, func(ctx context.Context, tx any) error {
		if _, err := store.Transact(ctx, types.MethodCreate, Query[*customer]{}, tx.(*Tx[*customer]), &customer{ID: "c1"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	rows, err := store.List(ctx, Query[*customer]{})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore()
	seed(t, store, &customer{ID: "c1", Name: "Ada"}, &customer{ID: "c2", Name: "Grace"})

	tx := store.Begin()
	_, err := store.Transact(ctx, types.MethodUpdate, Query[*customer]{}, tx, &customer{ID: "c1", Name: "Ada L."})
	require.NoError(t, err)
	removed, err := store.Transact(ctx, types.MethodDelete, Query[*customer]{ID: "c2"}, tx, nil)
	require.NoError(t, err)
	require.Equal(t, "Grace", removed.Name)
	require.NoError(t, tx.Commit())

	rows, err := store.List(ctx, Query[*customer]{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Ada L.", rows[0].Name)
}

func TestStore_TransactErrors(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore()
	seed(t, store, &customer{ID: "c1"})

	_, err := store.Transact(ctx, types.MethodCreate, Query[*customer]{}, nil, &customer{ID: "c9"})
	require.ErrorIs(t, err, types.ErrTransactionRequired)

	_, err = store.Transact(ctx, types.MethodCreate, Query[*customer]{}, newCustomerStore().Begin(), &customer{ID: "c9"})
	require.ErrorIs(t, err, types.ErrTransactionType)

	tx := store.Begin()
	_, err = store.Transact(ctx, types.MethodCreate, Query[*customer]{}, tx, &customer{ID: "c1"})
	require.ErrorIs(t, err, ErrDuplicateRecord)
	require.True(t, goerrors.IsCategory(err, goerrors.CategoryConflict))

	_, err = store.Transact(ctx, types.MethodUpdate, Query[*customer]{}, tx, &customer{ID: "missing"})
	require.ErrorIs(t, err, types.ErrRecordNotFound)
	require.True(t, goerrors.IsNotFound(err))

	_, err = store.Transact(ctx, "archive", Query[*customer]{}, tx, &customer{ID: "c1"})
	require.ErrorIs(t, err, types.ErrUnknownMethod)

	require.NoError(t, tx.Rollback())
	_, err = store.Transact(ctx, types.MethodCreate, Query[*customer]{}, tx, &customer{ID: "c2"})
	require.ErrorIs(t, err, ErrTxDone)
}

func TestStore_Validate(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore()
	seed(t, store, &customer{ID: "c1", Active: true}, &customer{ID: "c2"})

	isActive := func(c *customer) bool { return c.Active }

	ok, err := store.Validate(ctx, Query[*customer]{ID: "c1"}, isActive)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Validate(ctx, Query[*customer]{ID: "c2"}, isActive)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = store.Validate(ctx, Query[*customer]{ID: "nope"}, isActive)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_ThroughErasedContract(t *testing.T) {
	ctx := context.Background()
	store := newCustomerStore()
	inv := invoker.Erase[Query[*customer], *customer, *Tx[*customer]](store)

	var created *customer
	err := store.RunInTx(ctx, func(ctx context.Context, tx any) error {
		var err error
		created, err = invoker.Transact[*customer](ctx, inv, types.MethodCreate, Query[*customer]{}, tx, &customer{Name: "Linus", Active: true})
		return err
	})
	require.NoError(t, err)

	one, err := invoker.GetOne[*customer](ctx, inv, Query[*customer]{ID: created.ID})
	require.NoError(t, err)
	require.Equal(t, "Linus", one.Name)

	many, err := invoker.GetMany[*customer](ctx, inv, Query[*customer]{Where: func(c *customer) bool { return c.Active }})
	require.NoError(t, err)
	require.Len(t, many, 1)

	ok, err := invoker.Validate(ctx, inv, Query[*customer]{ID: created.ID}, func(c *customer) bool { return c.Active })
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStore_TransactWithoutData(t *testing.T) {
	ctx := context.Background()
	store := NewStore(Config[*customer]{
		IDOf: func(c *customer) string { return c.ID },
	})
	inv := invoker.Erase[Query[*customer], *customer, *Tx[*customer]](store)

	for _, method := range []string{types.MethodCreate, types.MethodUpdate, types.MethodDelete} {
		err := store.RunInTx(ctx, func(ctx context.Context, tx any) error {
			_, err := inv.Transact(ctx, method, Query[*customer]{}, tx, nil)
			return err
		})
		require.Error(t, err, method)
		require.True(t, goerrors.IsValidation(err), method)
	}

	rows, err := store.List(ctx, Query[*customer]{})
	require.NoError(t, err)
	require.Empty(t, rows)
}
