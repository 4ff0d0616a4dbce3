package memory

import (
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-discovery/invoker"
	"github.com/goliatone/go-discovery/pkg/types"
	goerrors "github.com/goliatone/go-errors"
)

// Query addresses records held by a Store. ID narrows to a single record and
// Where filters candidates; both are optional.
type Query[M any] struct {
	ID    string
	Where func(M) bool
}

func (q Query[M]) matches(model M) bool {
	return q.Where == nil || q.Where(model)
}

// Config wires a Store.
type Config[M any] struct {
	// IDOf returns the identifier of a model. Required.
	IDOf func(M) string
	// AssignID stores a generated identifier on models created without one.
	AssignID func(M, string) M
	// IDGenerator defaults to types.UUIDGenerator.
	IDGenerator types.IDGenerator
}

// Store is a map-backed invoker for a single model type. Writes are only
// possible through a Tx obtained from Begin or RunInTx.
type Store[M any] struct {
	mu      sync.RWMutex
	records map[string]M

	idOf     func(M) string
	assignID func(M, string) M
	idGen    types.IDGenerator
}

var _ invoker.Invoker[Query[any], any, *Tx[any]] = (*Store[any])(nil)

// NewStore provisions an empty in-memory store.
func NewStore[M any](cfg Config[M]) *Store[M] {
	idGen := cfg.IDGenerator
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	idOf := cfg.IDOf
	if idOf == nil {
		idOf = func(M) string { return "" }
	}
	return &Store[M]{
		records:  make(map[string]M),
		idOf:     idOf,
		assignID: cfg.AssignID,
		idGen:    idGen,
	}
}

// Get returns the first record matching query, ordered by identifier.
func (s *Store[M]) Get(ctx context.Context, query Query[M]) (M, error) {
	var zero M
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	model, ok := find(s.records, query)
	if !ok {
		return zero, notFound(query.ID)
	}
	return model, nil
}

// List returns every record matching query, ordered by identifier.
func (s *Store[M]) List(ctx context.Context, query Query[M]) ([]M, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter(s.records, query), nil
}

// Validate evaluates check against the record addressed by query. A query
// that matches nothing does not validate.
func (s *Store[M]) Validate(ctx context.Context, query Query[M], check func(M) bool) (bool, error) {
	if check == nil {
		return false, types.ErrCheckRequired
	}
	model, err := s.Get(ctx, query)
	if err != nil {
		if goerrors.Is(err, types.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return check(model), nil
}

// Transact stages method in tx. Changes become visible after tx.Commit.
func (s *Store[M]) Transact(ctx context.Context, method string, query Query[M], tx *Tx[M], data M) (M, error) {
	var zero M
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	if tx == nil {
		return zero, types.ErrTransactionRequired
	}
	if tx.store != s {
		return zero, goerrors.Wrap(types.ErrTransactionType, goerrors.CategoryBadInput, "transaction belongs to another store").
			WithCode(goerrors.CodeBadRequest)
	}

	method = strings.ToLower(strings.TrimSpace(method))
	switch method {
	case types.MethodCreate, types.MethodUpdate:
		if isZero(data) {
			return zero, requiresData(method)
		}
	case types.MethodDelete:
		if query.ID == "" && isZero(data) {
			return zero, requiresData(method)
		}
	}

	switch method {
	case types.MethodCreate:
		return tx.create(data)
	case types.MethodUpdate:
		return tx.update(data)
	case types.MethodDelete:
		return tx.delete(query, data)
	default:
		return zero, goerrors.Wrap(types.ErrUnknownMethod, goerrors.CategoryBadInput, "memory store: "+method).
			WithCode(goerrors.CodeBadRequest)
	}
}

func requiresData(method string) error {
	return goerrors.New("memory store: "+method+" requires data", goerrors.CategoryValidation).
		WithCode(goerrors.CodeBadRequest)
}

func isZero[M any](value M) bool {
	return reflect.ValueOf(&value).Elem().IsZero()
}

// Begin opens a transaction against the store.
func (s *Store[M]) Begin() *Tx[M] {
	return &Tx[M]{
		store:   s,
		writes:  make(map[string]M),
		deletes: make(map[string]struct{}),
	}
}

// RunInTx implements types.TxRunner. The handle passed to fn is a *Tx[M].
func (s *Store[M]) RunInTx(ctx context.Context, fn func(ctx context.Context, tx any) error) error {
	tx := s.Begin()
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

var _ types.TxRunner = (*Store[any])(nil)

func find[M any](records map[string]M, query Query[M]) (M, bool) {
	var zero M
	if query.ID != "" {
		model, ok := records[query.ID]
		if !ok || !query.matches(model) {
			return zero, false
		}
		return model, true
	}
	for _, id := range sortedIDs(records) {
		if model := records[id]; query.matches(model) {
			return model, true
		}
	}
	return zero, false
}

func filter[M any](records map[string]M, query Query[M]) []M {
	if query.ID != "" {
		model, ok := find(records, query)
		if !ok {
			return []M{}
		}
		return []M{model}
	}
	out := make([]M, 0, len(records))
	for _, id := range sortedIDs(records) {
		if model := records[id]; query.matches(model) {
			out = append(out, model)
		}
	}
	return out
}

func sortedIDs[M any](records map[string]M) []string {
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func notFound(id string) error {
	return goerrors.Wrap(types.ErrRecordNotFound, goerrors.CategoryNotFound, "memory store: no matching record").
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{"id": id})
}
