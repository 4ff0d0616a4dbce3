package bunrepo

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/goliatone/go-discovery/invoker"
	"github.com/goliatone/go-discovery/pkg/types"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

// Query selects records through go-repository-bun criteria. ID, when set,
// narrows the selection to the record with that primary key.
type Query struct {
	ID       string
	Criteria []repository.SelectCriteria
}

// Config wires the Bun-backed invoker. Either DB with Handlers, or Repository
// must be provided.
type Config[M any] struct {
	DB         *bun.DB
	Repository repository.Repository[M]
	Handlers   repository.ModelHandlers[M]
	Logger     types.Logger
}

// Invoker fronts a go-repository-bun repository with the invoker contract. The
// transaction handle is any bun.IDB, typically the bun.Tx handed out by
// TxRunner.
type Invoker[M any] struct {
	store    repository.Repository[M]
	logger   types.Logger
	idColumn string
}

var _ invoker.Invoker[Query, any, bun.IDB] = (*Invoker[any])(nil)

// New constructs the Bun-backed invoker.
func New[M any](cfg Config[M], options ...Option) (*Invoker[M], error) {
	opts := applyOptions(options)
	store := cfg.Repository
	if store == nil {
		if cfg.DB == nil {
			return nil, errors.New("bunrepo: db or repository required")
		}
		if cfg.Handlers.NewRecord == nil {
			return nil, errors.New("bunrepo: model handlers required")
		}
		store = repository.NewRepository(cfg.DB, cfg.Handlers)
	}
	if opts.CacheEnabled {
		if _, cached := store.(*repositorycache.CachedRepository[M]); !cached {
			cacheCfg := cache.DefaultConfig()
			if opts.CacheConfig != nil {
				cacheCfg = *opts.CacheConfig
			}
			cacheService, err := cache.NewCacheService(cacheCfg)
			if err != nil {
				return nil, err
			}
			store = repositorycache.New(store, cacheService, cache.NewDefaultKeySerializer())
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = types.NopLogger{}
	}
	return &Invoker[M]{
		store:    store,
		logger:   logger,
		idColumn: opts.IDColumn,
	}, nil
}

// Get returns the record addressed by query.
func (i *Invoker[M]) Get(ctx context.Context, query Query) (M, error) {
	var (
		record M
		err    error
	)
	if query.ID != "" {
		record, err = i.store.GetByID(ctx, query.ID, query.Criteria...)
	} else {
		record, err = i.store.Get(ctx, query.Criteria...)
	}
	if err != nil {
		var zero M
		return zero, mapError(err, query)
	}
	return record, nil
}

// List returns every record addressed by query.
func (i *Invoker[M]) List(ctx context.Context, query Query) ([]M, error) {
	criteria := query.Criteria
	if query.ID != "" {
		criteria = append([]repository.SelectCriteria{repository.SelectBy(i.idColumn, "=", query.ID)}, criteria...)
	}
	records, _, err := i.store.List(ctx, criteria...)
	if err != nil {
		return nil, mapError(err, query)
	}
	return records, nil
}

// Validate loads the record addressed by query and evaluates check. A query
// that matches nothing does not validate.
func (i *Invoker[M]) Validate(ctx context.Context, query Query, check func(M) bool) (bool, error) {
	if check == nil {
		return false, types.ErrCheckRequired
	}
	record, err := i.Get(ctx, query)
	if err != nil {
		if goerrors.Is(err, types.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return check(record), nil
}

// Transact runs create, update, or delete inside tx. Delete without data
// removes the row matching query.ID and returns the zero M.
func (i *Invoker[M]) Transact(ctx context.Context, method string, query Query, tx bun.IDB, data M) (M, error) {
	var zero M
	if tx == nil {
		return zero, types.ErrTransactionRequired
	}
	method = strings.ToLower(strings.TrimSpace(method))
	i.logger.Debug("bunrepo transact", "method", method, "id", query.ID)

	if (method == types.MethodCreate || method == types.MethodUpdate) && isZero(data) {
		return zero, goerrors.New("bunrepo: "+method+" requires data", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	switch method {
	case types.MethodCreate:
		created, err := i.store.CreateTx(ctx, tx, data)
		if err != nil {
			return zero, wrapOperation(err, method)
		}
		return created, nil
	case types.MethodUpdate:
		updated, err := i.store.UpdateTx(ctx, tx, data)
		if err != nil {
			return zero, wrapOperation(err, method)
		}
		return updated, nil
	case types.MethodDelete:
		if isZero(data) {
			return zero, i.deleteByID(ctx, tx, query)
		}
		if err := i.store.DeleteTx(ctx, tx, data); err != nil {
			return zero, wrapOperation(err, method)
		}
		return data, nil
	default:
		return zero, goerrors.Wrap(types.ErrUnknownMethod, goerrors.CategoryBadInput, "bunrepo: "+method).
			WithCode(goerrors.CodeBadRequest)
	}
}

// deleteByID loads the row inside tx first so a missing id surfaces as
// ErrRecordNotFound and the cache drops the entries for that record.
func (i *Invoker[M]) deleteByID(ctx context.Context, tx bun.IDB, query Query) error {
	if query.ID == "" {
		return goerrors.New("bunrepo: delete requires data or query id", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}
	record, err := i.store.GetTx(ctx, tx, repository.SelectBy(i.idColumn, "=", query.ID))
	if err != nil {
		return wrapOperation(err, types.MethodDelete)
	}
	if err := i.store.DeleteTx(ctx, tx, record); err != nil {
		return wrapOperation(err, types.MethodDelete)
	}
	return nil
}

func mapError(err error, query Query) error {
	if repository.IsRecordNotFound(err) {
		return goerrors.Wrap(types.ErrRecordNotFound, goerrors.CategoryNotFound, "bunrepo: no matching record").
			WithCode(goerrors.CodeNotFound).
			WithMetadata(map[string]any{"id": query.ID, "cause": err.Error()})
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, "bunrepo: query failed")
}

func wrapOperation(err error, method string) error {
	if repository.IsRecordNotFound(err) || repository.IsSQLExpectedCountViolation(err) {
		return goerrors.Wrap(types.ErrRecordNotFound, goerrors.CategoryNotFound, "bunrepo: "+method).
			WithCode(goerrors.CodeNotFound)
	}
	if repository.IsDuplicatedKey(err) {
		return goerrors.Wrap(err, goerrors.CategoryConflict, "bunrepo: "+method).
			WithCode(goerrors.CodeConflict)
	}
	return goerrors.Wrap(err, goerrors.CategoryOperation, "bunrepo: "+method)
}

func isZero[M any](value M) bool {
	return reflect.ValueOf(&value).Elem().IsZero()
}
